package app_test

import (
	"context"
	"errors"
	"testing"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
)

func TestIngestHotel_UpsertsAndInvalidates(t *testing.T) {
	catalog := memory.NewCatalog()
	cache := &fakeCache{}
	ctx := context.Background()
	_ = cache.Set(ctx, "hotels:all", []domain.Hotel{}, 60)
	_ = cache.Set(ctx, "hotel:1", domain.Hotel{ID: "1", Name: "stale"}, 60)

	svc := app.NewIngestionService(nil, catalog, cache)
	h := shared.SampleHotels()[0]
	if err := svc.IngestHotel(ctx, h); err != nil {
		t.Fatalf("IngestHotel: %v", err)
	}
	if got, err := catalog.GetHotel(ctx, "1"); err != nil || got.Name != h.Name {
		t.Fatalf("catalog: %+v %v", got, err)
	}
	if cache.has("hotels:all") || cache.has("hotel:1") {
		t.Fatalf("stale cache entries survived: %v", cache.dels)
	}

	if err := svc.IngestHotel(ctx, domain.Hotel{ID: "bad"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("invalid hotel: %v", err)
	}
}

func TestFetchDeals_MapsFeed(t *testing.T) {
	enrich := &fakeEnrich{deals: []map[string]any{
		{"id": 7.0, "title": "Backpack", "price": 19.95, "description": "d", "image": "https://img/7.png",
			"rating": map[string]any{"rate": 2.1, "count": 40.0}},
		{"id": 8.0, "title": "Jacket", "price": 120.4, "rating": map[string]any{"rate": 4.6}},
		{"title": "no id"},
	}}
	catalog := memory.NewCatalog()
	svc := app.NewIngestionService(enrich, catalog, nil)

	deals, err := svc.FetchDeals(context.Background(), 8)
	if err != nil {
		t.Fatalf("FetchDeals: %v", err)
	}
	if len(deals) != 2 {
		t.Fatalf("want 2 deals, got %+v", deals)
	}
	d := deals[0]
	if d.ID != "deal-7" || d.Price != 60 || d.Rating != 3 || d.ReviewCount != 40 || d.Location != "Special Deal" {
		t.Fatalf("unexpected first deal: %+v", d)
	}
	if deals[1].Price != 120 || deals[1].Rating != 5 || deals[1].ReviewCount != 100 {
		t.Fatalf("unexpected second deal: %+v", deals[1])
	}
	if m := catalog.Misses(); len(m) != 1 || m[0].Status != 422 {
		t.Fatalf("expected one recorded miss for the broken item, got %+v", m)
	}
}

func TestFetchDeals_MissesAndErrors(t *testing.T) {
	ctx := context.Background()

	catalog := memory.NewCatalog()
	svc := app.NewIngestionService(&fakeEnrich{dealsErr: errors.New("enrichment: not found")}, catalog, &fakeCache{})
	deals, err := svc.FetchDeals(ctx, 8)
	if err != nil || len(deals) != 0 {
		t.Fatalf("404 should be a miss: %+v %v", deals, err)
	}
	if m := catalog.Misses(); len(m) != 1 || m[0].Status != 404 || m[0].Source != "deals" {
		t.Fatalf("misses = %+v", m)
	}

	catalog = memory.NewCatalog()
	svc = app.NewIngestionService(&fakeEnrich{dealsErr: errors.New("enrichment: forbidden")}, catalog, nil)
	if _, err := svc.FetchDeals(ctx, 8); err != nil {
		t.Fatalf("403 should be a miss: %v", err)
	}
	if m := catalog.Misses(); len(m) != 1 || m[0].Status != 403 {
		t.Fatalf("misses = %+v", m)
	}

	svc = app.NewIngestionService(&fakeEnrich{dealsErr: errors.New("remote 503")}, memory.NewCatalog(), nil)
	if _, err := svc.FetchDeals(ctx, 8); err == nil {
		t.Fatalf("expected transient error to bubble up")
	}

	svc = app.NewIngestionService(nil, memory.NewCatalog(), nil)
	if deals, err := svc.FetchDeals(ctx, 8); err != nil || deals != nil {
		t.Fatalf("no client: %+v %v", deals, err)
	}
}
