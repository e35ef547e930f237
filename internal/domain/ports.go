package domain

import "context"

const (
	CollectionBookings = "bookings"
	CollectionReviews  = "reviews"
	CollectionUsers    = "users"
)

// Filter is an equality predicate on a stored field.
type Filter struct {
	Field string
	Value any
}

func Eq(field string, v any) Filter { return Filter{Field: field, Value: v} }

// DocumentStore is the persistence collaborator. It assigns identifiers; the
// order of Query results is unspecified.
type DocumentStore interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Get(ctx context.Context, collection, id string, dst any) error
	Query(ctx context.Context, collection string, filters []Filter, dst any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
}

type HotelCatalog interface {
	// Write paths
	UpsertHotel(ctx context.Context, h Hotel) error
	LogMiss(ctx context.Context, source string, status int, reason string) error

	// Read paths
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
}

type EnrichmentClient interface {
	GetDeals(ctx context.Context, limit int) ([]map[string]any, error)
	GetWeather(ctx context.Context, lat, lon float64) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

const (
	TopicBookingConfirmed       = "booking.confirmed"
	TopicBookingCancelled       = "booking.cancelled"
	TopicReviewCreated          = "review.created"
	TopicPasswordResetRequested = "user.password_reset_requested"
)

type Weather struct {
	TempC       float64 `json:"temp"`
	Description string  `json:"description"`
	Fallback    bool    `json:"fallback"`
}

type HotelsQuery struct {
	Q    string
	Sort SortKey
}
