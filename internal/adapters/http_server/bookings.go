package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/receipt"
	"hotel_booking/internal/app"
)

type bookingReq struct {
	HotelID  string `json:"hotelId" validate:"required,max=64"`
	CheckIn  string `json:"checkInDate" validate:"required"`
	CheckOut string `json:"checkOutDate" validate:"required"`
	Rooms    int    `json:"numberOfRooms"`
}

// parseDay accepts a calendar date (2006-01-02), read in the server clock's
// zone, or a full RFC 3339 timestamp.
func parseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handlers) bookingRequest(w http.ResponseWriter, r *http.Request) (app.BookingRequest, bool) {
	var req bookingReq
	if !h.decode(w, r, &req) {
		return app.BookingRequest{}, false
	}
	loc := h.Now().Location()
	in, err := parseDay(req.CheckIn, loc)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "checkInDate must be YYYY-MM-DD or RFC 3339")
		return app.BookingRequest{}, false
	}
	out, err := parseDay(req.CheckOut, loc)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "checkOutDate must be YYYY-MM-DD or RFC 3339")
		return app.BookingRequest{}, false
	}
	return app.BookingRequest{HotelID: req.HotelID, CheckIn: in, CheckOut: out, Rooms: req.Rooms}, true
}

func (h *Handlers) quoteBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	req, ok := h.bookingRequest(w, r)
	if !ok {
		return
	}
	q, err := h.Bookings.Quote(r.Context(), p, req)
	observability.ObserveBooking("quote", err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	req, ok := h.bookingRequest(w, r)
	if !ok {
		return
	}
	b, err := h.Bookings.Create(r.Context(), p, req)
	observability.ObserveBooking("create", err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("booking_id", b.ID).Str("hotel_id", b.HotelID).Float64("total", b.TotalCost).Msg("booking confirmed")
	w.Header().Set("Location", "/v1/bookings/"+b.ID)
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	bs, err := h.Bookings.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": bs, "count": len(bs)})
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	b, err := h.Bookings.Cancel(r.Context(), p, chi.URLParam(r, "id"))
	observability.ObserveBooking("cancel", err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) bookingReceipt(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	pdf, filename, err := receipt.Render(b.Booking, b.Status, h.Now())
	if err != nil {
		writeError(w, r, fmt.Errorf("render receipt: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Error().Err(err).Msg("failed to write receipt")
	}
}
