package app

import (
	"context"
	"time"

	"hotel_booking/internal/domain"
)

type ReviewList struct {
	Items   []domain.Review      `json:"items"`
	Summary domain.ReviewSummary `json:"summary"`
}

type ReviewService struct {
	store  domain.DocumentStore
	hotels HotelReader
	events domain.EventPublisher
	now    func() time.Time
}

func NewReviewService(store domain.DocumentStore, hotels HotelReader, events domain.EventPublisher, now func() time.Time) *ReviewService {
	if now == nil {
		now = time.Now
	}
	return &ReviewService{store: store, hotels: hotels, events: events, now: now}
}

// List returns a hotel's reviews newest first with their average.
func (s *ReviewService) List(ctx context.Context, hotelID string) (ReviewList, error) {
	if _, err := s.hotels.GetHotel(ctx, hotelID); err != nil {
		return ReviewList{}, err
	}
	var rs []domain.Review
	if err := s.store.Query(ctx, domain.CollectionReviews, []domain.Filter{domain.Eq("hotelId", hotelID)}, &rs); err != nil {
		return ReviewList{}, domain.Persistence("list reviews", err)
	}
	sorted := domain.SortReviewsNewestFirst(rs)
	if sorted == nil {
		sorted = []domain.Review{}
	}
	return ReviewList{Items: sorted, Summary: domain.SummarizeReviews(sorted)}, nil
}

func (s *ReviewService) Submit(ctx context.Context, p domain.Principal, hotelID string, rating int, comment string) (domain.Review, error) {
	if _, err := s.hotels.GetHotel(ctx, hotelID); err != nil {
		return domain.Review{}, err
	}
	r, err := domain.NewReview(currentName(ctx, s.store, p), hotelID, rating, comment, s.now())
	if err != nil {
		return domain.Review{}, err
	}
	id, err := s.store.Create(ctx, domain.CollectionReviews, r)
	if err != nil {
		return domain.Review{}, domain.Persistence("create review", err)
	}
	r.ID = id
	publish(ctx, s.events, domain.TopicReviewCreated, id, r)
	return r, nil
}

// HasReviewed reports whether p already left a review for hotelID. Repeat
// reviews are allowed; clients use this to change their prompt.
func (s *ReviewService) HasReviewed(ctx context.Context, p domain.Principal, hotelID string) (bool, error) {
	var rs []domain.Review
	err := s.store.Query(ctx, domain.CollectionReviews, []domain.Filter{
		domain.Eq("userId", p.UserID),
		domain.Eq("hotelId", hotelID),
	}, &rs)
	if err != nil {
		return false, domain.Persistence("check review", err)
	}
	return len(rs) > 0, nil
}
