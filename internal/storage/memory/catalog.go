package memory

import (
	"context"
	"slices"
	"sync"

	"hotel_booking/internal/domain"
)

type Miss struct {
	Source string
	Status int
	Reason string
}

// Catalog is an in-process HotelCatalog. ListHotels returns hotels in
// insertion order.
type Catalog struct {
	mu     sync.RWMutex
	order  []string
	hotels map[string]domain.Hotel
	misses []Miss
}

func NewCatalog(seed ...domain.Hotel) *Catalog {
	c := &Catalog{hotels: map[string]domain.Hotel{}}
	for _, h := range seed {
		_ = c.UpsertHotel(context.Background(), h)
	}
	return c
}

func (c *Catalog) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	if err := h.Validate(); err != nil {
		return err
	}
	h.Amenities = slices.Clone(h.Amenities)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.hotels[h.ID]; !ok {
		c.order = append(c.order, h.ID)
	}
	c.hotels[h.ID] = h
	return nil
}

func (c *Catalog) LogMiss(ctx context.Context, source string, status int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses = append(c.misses, Miss{Source: source, Status: status, Reason: reason})
	return nil
}

func (c *Catalog) Misses() []Miss {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.misses)
}

func (c *Catalog) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	h.Amenities = slices.Clone(h.Amenities)
	return h, nil
}

func (c *Catalog) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Hotel, 0, len(c.order))
	for _, id := range c.order {
		h := c.hotels[id]
		h.Amenities = slices.Clone(h.Amenities)
		out = append(out, h)
	}
	return out, nil
}
