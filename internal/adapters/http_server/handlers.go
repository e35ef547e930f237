package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Q        *app.QueryService
	Bookings *app.BookingService
	Reviews  *app.ReviewService
	Accounts *app.AccountService
	Tokens   TokenVerifier
	Now      func() time.Time

	validate *validator.Validate
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Now == nil {
		h.Now = time.Now
	}
	h.validate = validator.New(validator.WithRequiredStructEnabled())
	h.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.signUp)
		r.Post("/auth/signin", h.signIn)
		r.Post("/auth/password-reset", h.passwordReset)

		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/hotels/{id}/weather", h.getWeather)
		r.Get("/hotels/{id}/reviews", h.listReviews)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(h.Tokens))

			r.Get("/me", h.getMe)
			r.Patch("/me", h.patchMe)
			r.Post("/me/onboarding", h.completeOnboarding)

			r.Post("/hotels/{id}/reviews", h.submitReview)
			r.Get("/hotels/{id}/reviews/me", h.hasReviewed)

			r.Post("/bookings/quote", h.quoteBooking)
			r.Post("/bookings", h.createBooking)
			r.Get("/bookings", h.listBookings)
			r.Get("/bookings/{id}", h.getBooking)
			r.Post("/bookings/{id}/cancel", h.cancelBooking)
			r.Get("/bookings/{id}/receipt", h.bookingReceipt)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps an error kind to its problem response. Unknown errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidRoomCount),
		errors.Is(err, domain.ErrInvalidReview),
		errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Bad Request", domain.Message(err))
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", domain.Message(err))
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrCancellationClosed):
		writeProblem(w, http.StatusConflict, "Conflict", domain.Message(err))
	default:
		log.Error().Err(err).Str("route", routeOf(r)).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeCached sends v with a weak ETag and answers 304 when the client
// already holds this version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("route", routeOf(r)).Msg("failed to write body")
	}
}

// decode reads a JSON body into dst and runs its validate tags. It writes the
// problem response itself and reports whether the handler may continue.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", validationDetail(err))
		return false
	}
	return true
}

func validationDetail(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err.Error()
	}
	fe := ves[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

func (h *Handlers) principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := principalFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
	}
	return p, ok
}
