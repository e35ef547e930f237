package app

import "testing"

func TestMapDeal_Defaults(t *testing.T) {
	h, err := mapDeal(map[string]any{"id": "12", "title": " Lamp ", "price": "59,5"})
	if err != nil {
		t.Fatalf("mapDeal: %v", err)
	}
	if h.ID != "deal-12" || h.Name != "Lamp" || h.Price != 60 || h.Rating != 4 || h.ReviewCount != 100 {
		t.Fatalf("unexpected: %+v", h)
	}
	if len(h.Amenities) != 3 || h.Coords == nil || h.Coords.Lat != 40.7589 || h.Image != nil {
		t.Fatalf("unexpected extras: %+v", h)
	}
	h.Amenities[0] = "changed"
	if dealAmenities[0] != "WiFi" {
		t.Fatalf("amenities must not alias the shared default")
	}
}

func TestMapDeal_RoundsAndClamps(t *testing.T) {
	h, _ := mapDeal(map[string]any{"id": 3.0, "price": 109.5, "rating": map[string]any{"rate": 4.5, "count": 7.0}})
	if h.Price != 110 || h.Rating != 5 || h.ReviewCount != 7 {
		t.Fatalf("unexpected: %+v", h)
	}
	h, _ = mapDeal(map[string]any{"id": 4.0, "price": 300.0, "rating": map[string]any{"rate": 1.2}})
	if h.Rating != 3 {
		t.Fatalf("rating should clamp to 3, got %v", h.Rating)
	}
}

func TestMapWeather(t *testing.T) {
	w := mapWeather(map[string]any{
		"main":    map[string]any{"temp": 5.0},
		"weather": []any{map[string]any{"description": "snow"}},
	})
	if w.TempC != 5 || w.Description != "snow" || w.Fallback {
		t.Fatalf("unexpected: %+v", w)
	}
	if w := mapWeather(map[string]any{"weather": []any{}}); !w.Fallback || w.TempC != 22 {
		t.Fatalf("expected fallback: %+v", w)
	}
	if w := mapWeather(map[string]any{"main": map[string]any{"temp": 30.0}}); w.Description != "clear sky" || w.Fallback {
		t.Fatalf("missing description: %+v", w)
	}
}

func TestLookupAny_IndexesSlices(t *testing.T) {
	m := map[string]any{"a": []any{map[string]any{"b": "x"}}}
	if lookupStr(m, "a.0.b") != "x" || lookupAny(m, "a.1.b") != nil || lookupAny(m, "a.z") != nil {
		t.Fatalf("slice lookup broken")
	}
}
