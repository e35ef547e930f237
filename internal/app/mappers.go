package app

import (
	"math"
	"strconv"
	"strings"

	"hotel_booking/internal/domain"
)

/********** alias registries **********/

var dealAliases = map[string][]string{
	"id":          {"id", "product_id", "productId"},
	"name":        {"title", "name"},
	"description": {"description", "summary"},
	"image":       {"image", "thumbnail", "images"},
	"rate":        {"rating.rate", "rate", "rating"},
	"count":       {"rating.count", "count", "reviews"},
	"price":       {"price"},
}

var weatherAliases = map[string][]string{
	"temp":        {"main.temp", "temp", "current.temp"},
	"description": {"weather.0.description", "description", "current.weather.0.description"},
}

// Deals carry no real address; they are pinned to one spot and location label.
const (
	dealIDPrefix  = "deal-"
	dealLocation  = "Special Deal"
	dealMinPrice  = 60
	dealMinRating = 3
	dealMaxRating = 5
)

var (
	dealAmenities = []string{"WiFi", "Breakfast", "Free Cancellation"}
	dealCoords    = domain.Coords{Lat: 40.7589, Lon: -73.9851}

	fallbackWeather = domain.Weather{TempC: 22, Description: "clear sky", Fallback: true}
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths; numeric parts index slices.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		switch obj := cur.(type) {
		case map[string]any:
			v, ok := obj[part]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(obj) {
				return nil
			}
			cur = obj[i]
		default:
			return nil
		}
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstIDFlexible: identifier from several paths, numbers rendered without a fraction.
func firstIDFlexible(m map[string]any, paths ...string) string {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			if v == math.Trunc(v) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

/********** deal mapper **********/

// mapDeal turns one product of the deals feed into a catalog hotel. Missing
// rating defaults to 4 and missing review count to 100.
func mapDeal(p map[string]any) (domain.Hotel, error) {
	id := firstIDFlexible(p, dealAliases["id"]...)
	if id == "" {
		return domain.Hotel{}, &domain.ValidationError{Kind: domain.ErrInvalidInput, Message: "deal has no id"}
	}

	rating := 4.0
	if f := getFloatFlexible(p, dealAliases["rate"]...); f != nil && *f != 0 {
		rating = *f
	}
	reviews := 100
	if f := getFloatFlexible(p, dealAliases["count"]...); f != nil && *f > 0 {
		reviews = int(*f)
	}
	price := 0.0
	if f := getFloatFlexible(p, dealAliases["price"]...); f != nil {
		price = math.Round(*f)
	}

	h := domain.Hotel{
		ID:          dealIDPrefix + id,
		Name:        firstNonEmptyAlias(p, dealAliases, "name"),
		Location:    dealLocation,
		Rating:      clamp(math.Round(rating), dealMinRating, dealMaxRating),
		ReviewCount: reviews,
		Price:       math.Max(dealMinPrice, price),
		Description: firstNonEmptyAlias(p, dealAliases, "description"),
		Amenities:   append([]string(nil), dealAmenities...),
	}
	if img := firstNonEmptyAlias(p, dealAliases, "image"); img != "" {
		h.Image = &img
	}
	c := dealCoords
	h.Coords = &c
	return h, h.Validate()
}

/********** weather mapper **********/

// mapWeather reads the current-weather payload; anything unreadable yields
// the fallback.
func mapWeather(p map[string]any) domain.Weather {
	t := getFloatFlexible(p, weatherAliases["temp"]...)
	if t == nil {
		return fallbackWeather
	}
	desc := firstNonEmptyAlias(p, weatherAliases, "description")
	if desc == "" {
		desc = fallbackWeather.Description
	}
	return domain.Weather{TempC: *t, Description: desc}
}
