package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const sourceDeals = "deals"

type IngestionService struct {
	enrich  domain.EnrichmentClient
	catalog domain.HotelCatalog
	cache   domain.Cache
}

// NewIngestionService wires catalog writes. enrich and cache may be nil.
func NewIngestionService(e domain.EnrichmentClient, c domain.HotelCatalog, cache domain.Cache) *IngestionService {
	return &IngestionService{enrich: e, catalog: c, cache: cache}
}

// IngestHotel upserts one hotel and evicts the cached copies that include it.
func (s *IngestionService) IngestHotel(ctx context.Context, h domain.Hotel) error {
	if err := s.catalog.UpsertHotel(ctx, h); err != nil {
		return fmt.Errorf("upsert hotel %s: %w", h.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(h.ID))
		_ = s.cache.Del(ctx, weatherKey(h.ID))
		_ = s.cache.Del(ctx, keyAllHotels)
	}
	return nil
}

// FetchDeals pulls the deals feed and maps it into hotels. A missing or
// forbidden feed is recorded as a miss and yields no deals; products that do
// not map to a valid hotel are recorded and skipped.
func (s *IngestionService) FetchDeals(ctx context.Context, limit int) ([]domain.Hotel, error) {
	if s.enrich == nil {
		return nil, nil
	}
	raw, err := s.enrich.GetDeals(ctx, limit)
	if err != nil {
		if status, reason, ok := missOf(err); ok {
			_ = s.catalog.LogMiss(ctx, sourceDeals, status, reason)
			if s.cache != nil {
				_ = s.cache.Del(ctx, keyAllHotels)
			}
			return nil, nil
		}
		return nil, err
	}

	out := make([]domain.Hotel, 0, len(raw))
	for i, p := range raw {
		h, err := mapDeal(p)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping deal")
			_ = s.catalog.LogMiss(ctx, sourceDeals, 422, truncate(fmt.Sprintf("item %d: %s", i, domain.Message(err)), 255))
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// missOf classifies feed errors that mean "nothing to ingest" rather than
// a failure: 404 and 401/403.
func missOf(err error) (int, string, bool) {
	low := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found"):
		return 404, "not found", true
	case strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
		strings.Contains(low, "401") || strings.Contains(low, "unauthorized"):
		return 403, "inactive", true
	}
	return 0, "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
