package app

import (
	"context"
	"time"

	"hotel_booking/internal/domain"
)

type BookingRequest struct {
	HotelID  string
	CheckIn  time.Time
	CheckOut time.Time
	Rooms    int
}

// BookingView is a stored booking as shown to its owner: Status is the
// effective status at read time.
type BookingView struct {
	domain.Booking
	CanCancel bool `json:"canCancel"`
}

type BookingService struct {
	store  domain.DocumentStore
	hotels HotelReader
	calc   domain.BookingCalculator
	events domain.EventPublisher
}

func NewBookingService(store domain.DocumentStore, hotels HotelReader, calc domain.BookingCalculator, events domain.EventPublisher) *BookingService {
	if calc.Now == nil {
		calc.Now = time.Now
	}
	return &BookingService{store: store, hotels: hotels, calc: calc, events: events}
}

// Quote prices a stay without storing anything.
func (s *BookingService) Quote(ctx context.Context, p domain.Principal, req BookingRequest) (domain.Booking, error) {
	h, err := s.hotels.GetHotel(ctx, req.HotelID)
	if err != nil {
		return domain.Booking{}, err
	}
	return s.calc.Calculate(domain.BookingInput{
		Principal: p,
		Hotel:     h,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Rooms:     req.Rooms,
	})
}

// Create validates, prices and stores a confirmed booking. Nothing is stored
// when validation fails.
func (s *BookingService) Create(ctx context.Context, p domain.Principal, req BookingRequest) (domain.Booking, error) {
	b, err := s.Quote(ctx, currentName(ctx, s.store, p), req)
	if err != nil {
		return domain.Booking{}, err
	}
	id, err := s.store.Create(ctx, domain.CollectionBookings, b)
	if err != nil {
		return domain.Booking{}, domain.Persistence("create booking", err)
	}
	b.ID = id
	publish(ctx, s.events, domain.TopicBookingConfirmed, id, b)
	return b, nil
}

// List returns the caller's bookings, newest first.
func (s *BookingService) List(ctx context.Context, p domain.Principal) ([]BookingView, error) {
	var bs []domain.Booking
	if err := s.store.Query(ctx, domain.CollectionBookings, []domain.Filter{domain.Eq("userId", p.UserID)}, &bs); err != nil {
		return nil, domain.Persistence("list bookings", err)
	}
	now := s.calc.Now()
	out := make([]BookingView, 0, len(bs))
	for _, b := range domain.SortBookingsNewestFirst(bs) {
		out = append(out, view(inZone(b, now.Location()), now))
	}
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, p domain.Principal, id string) (BookingView, error) {
	b, err := s.owned(ctx, p, id)
	if err != nil {
		return BookingView{}, err
	}
	return view(b, s.calc.Now()), nil
}

// Cancel moves an upcoming confirmed booking to cancelled.
func (s *BookingService) Cancel(ctx context.Context, p domain.Principal, id string) (domain.Booking, error) {
	b, err := s.owned(ctx, p, id)
	if err != nil {
		return domain.Booking{}, err
	}
	cancelled, err := domain.CancelBooking(b, s.calc.Now())
	if err != nil {
		return domain.Booking{}, err
	}
	if err := s.store.Update(ctx, domain.CollectionBookings, id, map[string]any{
		"status":      cancelled.Status,
		"cancelledAt": *cancelled.CancelledAt,
	}); err != nil {
		return domain.Booking{}, domain.Persistence("cancel booking", err)
	}
	publish(ctx, s.events, domain.TopicBookingCancelled, id, cancelled)
	return cancelled, nil
}

// owned loads a booking and hides other users' bookings behind ErrNotFound.
func (s *BookingService) owned(ctx context.Context, p domain.Principal, id string) (domain.Booking, error) {
	var b domain.Booking
	if err := s.store.Get(ctx, domain.CollectionBookings, id, &b); err != nil {
		return domain.Booking{}, domain.Persistence("get booking", err)
	}
	if b.UserID != p.UserID {
		return domain.Booking{}, domain.ErrNotFound
	}
	b.ID = id
	return inZone(b, s.calc.Now().Location()), nil
}

// inZone moves stored instants into the server clock's zone; the store hands
// them back in UTC.
func inZone(b domain.Booking, loc *time.Location) domain.Booking {
	b.CheckIn = b.CheckIn.In(loc)
	b.CheckOut = b.CheckOut.In(loc)
	b.CreatedAt = b.CreatedAt.In(loc)
	if b.CancelledAt != nil {
		at := b.CancelledAt.In(loc)
		b.CancelledAt = &at
	}
	return b
}

func view(b domain.Booking, now time.Time) BookingView {
	status := domain.EffectiveStatus(b, now)
	b.Status = status
	return BookingView{Booking: b, CanCancel: status == domain.StatusConfirmed}
}
