package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const (
	keyAllHotels = "hotels:all"
	weatherTTL   = 10 * time.Minute
)

func hotelKey(id string) string   { return "hotel:" + id }
func weatherKey(id string) string { return "weather:" + id }

type QueryService struct {
	catalog  domain.HotelCatalog
	cache    domain.Cache
	cacheTTL time.Duration
	enrich   domain.EnrichmentClient
}

// NewQueryService wires catalog reads. cache and enrich may be nil.
func NewQueryService(c domain.HotelCatalog, cache domain.Cache, ttl time.Duration, enrich domain.EnrichmentClient) *QueryService {
	return &QueryService{catalog: c, cache: cache, cacheTTL: ttl, enrich: enrich}
}

// ListHotels reads the whole catalog (cached) and runs it through the
// listing filter.
func (s *QueryService) ListHotels(ctx context.Context, q domain.HotelsQuery) ([]domain.Hotel, error) {
	all, err := s.allHotels(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterHotels(all, q.Q, q.Sort), nil
}

func (s *QueryService) allHotels(ctx context.Context) ([]domain.Hotel, error) {
	var hs []domain.Hotel
	if s.cacheGet(ctx, keyAllHotels, &hs) {
		return hs, nil
	}
	hs, err := s.catalog.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, keyAllHotels, hs, s.cacheTTL)
	return hs, nil
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	var h domain.Hotel
	if s.cacheGet(ctx, hotelKey(id), &h) {
		return h, nil
	}
	h, err := s.catalog.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.cacheSet(ctx, hotelKey(id), h, s.cacheTTL)
	return h, nil
}

// Weather never fails for a known hotel: missing coordinates, a missing
// client or any upstream error all yield the fallback reading.
func (s *QueryService) Weather(ctx context.Context, hotelID string) (domain.Weather, error) {
	h, err := s.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.Weather{}, err
	}
	if h.Coords == nil || s.enrich == nil {
		return fallbackWeather, nil
	}

	var w domain.Weather
	if s.cacheGet(ctx, weatherKey(hotelID), &w) {
		return w, nil
	}
	raw, err := s.enrich.GetWeather(ctx, h.Coords.Lat, h.Coords.Lon)
	if err != nil {
		log.Debug().Err(err).Str("hotel_id", hotelID).Msg("weather fallback")
		return fallbackWeather, nil
	}
	w = mapWeather(raw)
	if !w.Fallback {
		s.cacheSet(ctx, weatherKey(hotelID), w, weatherTTL)
	}
	return w, nil
}

// Cache failures degrade to a miss; the catalog stays authoritative.
func (s *QueryService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (s *QueryService) cacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Dur("ttl", ttl).Msg("cache set failed")
	}
}
