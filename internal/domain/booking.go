package domain

import (
	"slices"
	"time"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

const (
	MinRooms = 1
	MaxRooms = 10

	day = 24 * time.Hour
)

type Booking struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	UserID      string        `json:"userId" bson:"userId"`
	HotelID     string        `json:"hotelId" bson:"hotelId"`
	HotelName   string        `json:"hotelName" bson:"hotelName"`
	CheckIn     time.Time     `json:"checkInDate" bson:"checkInDate"`
	CheckOut    time.Time     `json:"checkOutDate" bson:"checkOutDate"`
	Rooms       int           `json:"numberOfRooms" bson:"numberOfRooms"`
	Nights      int           `json:"nights" bson:"nights"`
	TotalCost   float64       `json:"totalCost" bson:"totalCost"`
	Status      BookingStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	GuestName   string        `json:"guestName,omitempty" bson:"guestName"`
	GuestEmail  string        `json:"guestEmail,omitempty" bson:"guestEmail"`
}

type BookingInput struct {
	Principal Principal
	Hotel     Hotel
	CheckIn   time.Time
	CheckOut  time.Time
	Rooms     int
}

// BookingCalculator validates a stay and prices it. It holds no state besides
// its clock.
type BookingCalculator struct {
	Now func() time.Time
}

func NewBookingCalculator(now func() time.Time) BookingCalculator {
	if now == nil {
		now = time.Now
	}
	return BookingCalculator{Now: now}
}

// Calculate returns a draft booking (no ID) or a *ValidationError. Rules are
// checked in order: check-in not before today, check-out after check-in,
// rooms within [MinRooms, MaxRooms].
func (c BookingCalculator) Calculate(in BookingInput) (Booking, error) {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	if in.CheckIn.Before(midnight(now)) {
		return Booking{}, invalid(ErrInvalidDateRange, "check-in must be today or later")
	}
	if !in.CheckOut.After(in.CheckIn) {
		return Booking{}, invalid(ErrInvalidDateRange, "check-out must be after check-in")
	}
	if in.Rooms < MinRooms || in.Rooms > MaxRooms {
		return Booking{}, invalid(ErrInvalidRoomCount, "rooms must be between 1 and 10")
	}

	nights := Nights(in.CheckIn, in.CheckOut)
	return Booking{
		UserID:     in.Principal.UserID,
		HotelID:    in.Hotel.ID,
		HotelName:  in.Hotel.Name,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Rooms:      in.Rooms,
		Nights:     nights,
		TotalCost:  in.Hotel.Price * float64(nights) * float64(in.Rooms),
		Status:     StatusConfirmed,
		CreatedAt:  now,
		GuestName:  in.Principal.Name,
		GuestEmail: in.Principal.Email,
	}, nil
}

// Nights is the number of started days between checkIn and checkOut, at least 1.
// Both are compared by wall clock in their own zone, so a DST change inside
// the stay does not add or remove a night.
func Nights(checkIn, checkOut time.Time) int {
	d := wallClock(checkOut.In(checkIn.Location())).Sub(wallClock(checkIn))
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EffectiveStatus reports the status shown to users: a confirmed booking whose
// check-in has passed reads as completed. Nothing is written back.
func EffectiveStatus(b Booking, now time.Time) BookingStatus {
	if b.Status == StatusConfirmed && b.CheckIn.Before(now) {
		return StatusCompleted
	}
	return b.Status
}

// CancelBooking moves a confirmed booking whose check-in is not yet past to
// cancelled. It is the only active transition.
func CancelBooking(b Booking, now time.Time) (Booking, error) {
	switch EffectiveStatus(b, now) {
	case StatusConfirmed:
	case StatusCompleted:
		return Booking{}, invalid(ErrCancellationClosed, "only upcoming bookings can be cancelled")
	default:
		return Booking{}, invalid(ErrInvalidTransition, "booking is already "+string(b.Status))
	}
	at := now
	b.Status = StatusCancelled
	b.CancelledAt = &at
	return b, nil
}

// SortBookingsNewestFirst orders by CreatedAt descending without touching in.
func SortBookingsNewestFirst(in []Booking) []Booking {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b Booking) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}
