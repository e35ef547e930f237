package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/domain"
)

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	sort, err := domain.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	hs, err := h.Q.ListHotels(r.Context(), domain.HotelsQuery{Q: r.URL.Query().Get("q"), Sort: sort})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, map[string]any{"items": hs, "count": len(hs)})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, hotel)
}

func (h *Handlers) getWeather(w http.ResponseWriter, r *http.Request) {
	wx, err := h.Q.Weather(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wx)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req reviewReq
	if !h.decode(w, r, &req) {
		return
	}
	rev, err := h.Reviews.Submit(r.Context(), p, chi.URLParam(r, "id"), req.Rating, req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

func (h *Handlers) hasReviewed(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	done, err := h.Reviews.HasReviewed(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasReviewed": done})
}
