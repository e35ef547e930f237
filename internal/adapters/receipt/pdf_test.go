package receipt_test

import (
	"bytes"
	"testing"
	"time"

	"hotel_booking/internal/adapters/receipt"
	"hotel_booking/internal/domain"
)

func TestRender(t *testing.T) {
	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	b := domain.Booking{
		ID: "6b1f/../x", HotelID: "1", HotelName: "Hôtel Plaza",
		CheckIn: in, CheckOut: in.AddDate(0, 0, 3), Rooms: 2, Nights: 3, TotalCost: 1500,
		Status: domain.StatusConfirmed, GuestName: "Alice", GuestEmail: "alice@example.com",
	}
	out, name, err := receipt.Render(b, domain.StatusConfirmed, in)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
	if name != "booking_6b1f_x.pdf" {
		t.Fatalf("filename = %q", name)
	}
}

func TestRender_CancelledDraft(t *testing.T) {
	at := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	b := domain.Booking{HotelID: "2", Status: domain.StatusCancelled, CancelledAt: &at, Nights: 1, Rooms: 1}
	out, name, err := receipt.Render(b, domain.StatusCancelled, at)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out) == 0 || name != "booking_draft.pdf" {
		t.Fatalf("unexpected output len=%d name=%q", len(out), name)
	}
}
