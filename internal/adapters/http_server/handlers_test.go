package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hotel_booking/internal/adapters/auth"
	"hotel_booking/internal/adapters/events"
	httpserver "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
)

var testNow = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	catalog := memory.NewCatalog(shared.SampleHotels()...)
	tokens := auth.NewTokens("test-secret", time.Hour).WithClock(clock)
	q := app.NewQueryService(catalog, nil, time.Minute, nil)

	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		Q:        q,
		Bookings: app.NewBookingService(store, q, domain.NewBookingCalculator(clock), events.Noop{}),
		Reviews:  app.NewReviewService(store, q, events.Noop{}, clock),
		Accounts: app.NewAccountService(store, auth.BcryptHasher{Cost: bcrypt.MinCost}, tokens, events.Noop{}, clock),
		Tokens:   tokens,
		Now:      clock,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

type call struct {
	method, path, token string
	body                any
	header              map[string]string
}

func do(t *testing.T, ts *httptest.Server, c call) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if c.body != nil {
		if s, ok := c.body.(string); ok {
			rd = strings.NewReader(s)
		} else {
			b, _ := json.Marshal(c.body)
			rd = bytes.NewReader(b)
		}
	}
	req, err := http.NewRequest(c.method, ts.URL+c.path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", c.method, c.path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d: %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

func problemDetail(t *testing.T, resp *http.Response, body []byte) string {
	t.Helper()
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}
	var p struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &p)
	return p.Detail
}

func signUp(t *testing.T, ts *httptest.Server, email, name string) string {
	t.Helper()
	resp, body := do(t, ts, call{method: "POST", path: "/v1/auth/signup", body: map[string]string{
		"email": email, "password": "secret1", "name": name,
	}})
	expectStatus(t, resp, body, http.StatusCreated)
	var s struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &s)
	if s.Token == "" {
		t.Fatalf("no token in %s", body)
	}
	return s.Token
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := do(t, ts, call{method: "GET", path: "/healthz"})
	expectStatus(t, resp, body, http.StatusOK)
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}
}

func TestListHotels(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, call{method: "GET", path: "/v1/hotels?q=MIAMI&sort=price"})
	expectStatus(t, resp, body, http.StatusOK)
	var out struct {
		Items []domain.Hotel `json:"items"`
		Count int            `json:"count"`
	}
	_ = json.Unmarshal(body, &out)
	if out.Count != 1 || out.Items[0].Name != "Seaside Resort" {
		t.Fatalf("unexpected: %s", body)
	}

	etag := resp.Header.Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("missing weak etag: %q", etag)
	}
	resp, body = do(t, ts, call{method: "GET", path: "/v1/hotels?q=MIAMI&sort=price", header: map[string]string{"If-None-Match": etag}})
	expectStatus(t, resp, body, http.StatusNotModified)

	resp, body = do(t, ts, call{method: "GET", path: "/v1/hotels?sort=stars"})
	expectStatus(t, resp, body, http.StatusBadRequest)
	if d := problemDetail(t, resp, body); !strings.Contains(d, "sort") {
		t.Fatalf("detail = %q", d)
	}

	resp, body = do(t, ts, call{method: "GET", path: "/v1/hotels?q=zzz"})
	expectStatus(t, resp, body, http.StatusOK)
	if !strings.Contains(string(body), `"items":[]`) {
		t.Fatalf("empty result must be an empty array: %s", body)
	}
}

func TestGetHotelAndWeather(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, call{method: "GET", path: "/v1/hotels/3"})
	expectStatus(t, resp, body, http.StatusOK)
	if !strings.Contains(string(body), "Mountain Lodge") {
		t.Fatalf("body = %s", body)
	}

	resp, body = do(t, ts, call{method: "GET", path: "/v1/hotels/999"})
	expectStatus(t, resp, body, http.StatusNotFound)
	_ = problemDetail(t, resp, body)

	resp, body = do(t, ts, call{method: "GET", path: "/v1/hotels/1/weather"})
	expectStatus(t, resp, body, http.StatusOK)
	var w domain.Weather
	_ = json.Unmarshal(body, &w)
	if w.TempC != 22 || w.Description != "clear sky" || !w.Fallback {
		t.Fatalf("weather = %+v", w)
	}
}

func TestAuthEndpoints(t *testing.T) {
	ts := newTestServer(t)
	tok := signUp(t, ts, "alice@example.com", "Alice")

	resp, body := do(t, ts, call{method: "POST", path: "/v1/auth/signup", body: map[string]string{
		"email": "ALICE@example.com", "password": "secret1", "name": "Alice",
	}})
	expectStatus(t, resp, body, http.StatusConflict)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/auth/signup", body: map[string]string{
		"email": "bob@example.com", "password": "123", "name": "Bob",
	}})
	expectStatus(t, resp, body, http.StatusBadRequest)
	if d := problemDetail(t, resp, body); d != "password should be at least 6 characters" {
		t.Fatalf("detail = %q", d)
	}

	resp, body = do(t, ts, call{method: "POST", path: "/v1/auth/signup", body: map[string]string{"email": "x@y.z"}})
	expectStatus(t, resp, body, http.StatusBadRequest)
	if d := problemDetail(t, resp, body); d != "password is required" {
		t.Fatalf("detail = %q", d)
	}

	resp, body = do(t, ts, call{method: "POST", path: "/v1/auth/signin", body: `{"email":"alice@example.com","password":"secret1","extra":1}`})
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/auth/signin", body: map[string]string{"email": "alice@example.com", "password": "nope!!"}})
	expectStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/auth/signin", body: map[string]string{"email": "alice@example.com", "password": "secret1"}})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/auth/password-reset", body: map[string]string{"email": "ghost@example.com"}})
	expectStatus(t, resp, body, http.StatusAccepted)

	resp, body = do(t, ts, call{method: "GET", path: "/v1/me"})
	expectStatus(t, resp, body, http.StatusUnauthorized)
	resp, body = do(t, ts, call{method: "GET", path: "/v1/me", token: "forged"})
	expectStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = do(t, ts, call{method: "PATCH", path: "/v1/me", token: tok, body: map[string]string{"name": "Alice L"}})
	expectStatus(t, resp, body, http.StatusOK)
	resp, body = do(t, ts, call{method: "POST", path: "/v1/me/onboarding", token: tok})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = do(t, ts, call{method: "GET", path: "/v1/me", token: tok})
	expectStatus(t, resp, body, http.StatusOK)
	var u map[string]any
	_ = json.Unmarshal(body, &u)
	if u["name"] != "Alice L" || u["hasCompletedOnboarding"] != true {
		t.Fatalf("profile = %s", body)
	}
	if _, leaked := u["passwordHash"]; leaked {
		t.Fatalf("password hash leaked: %s", body)
	}
}

func TestBookingEndpoints(t *testing.T) {
	ts := newTestServer(t)
	tok := signUp(t, ts, "alice@example.com", "Alice")
	other := signUp(t, ts, "bob@example.com", "Bob")

	stay := map[string]any{"hotelId": "1", "checkInDate": "2024-06-01", "checkOutDate": "2024-06-04", "numberOfRooms": 2}

	resp, body := do(t, ts, call{method: "POST", path: "/v1/bookings", body: stay})
	expectStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/bookings/quote", token: tok, body: stay})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/bookings", token: tok, body: stay})
	expectStatus(t, resp, body, http.StatusCreated)
	var b domain.Booking
	_ = json.Unmarshal(body, &b)
	if b.ID == "" || b.TotalCost != 1500 || b.Nights != 3 || b.Status != domain.StatusConfirmed {
		t.Fatalf("booking = %s", body)
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/bookings/"+b.ID {
		t.Fatalf("location = %q", loc)
	}

	resp, body = do(t, ts, call{method: "GET", path: "/v1/bookings", token: tok})
	expectStatus(t, resp, body, http.StatusOK)
	if !strings.Contains(string(body), `"canCancel":true`) || !strings.Contains(string(body), `"count":1`) {
		t.Fatalf("list = %s", body)
	}

	resp, body = do(t, ts, call{method: "GET", path: "/v1/bookings/" + b.ID + "/receipt", token: tok})
	expectStatus(t, resp, body, http.StatusOK)
	if resp.Header.Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Fatalf("receipt is not a PDF: %q", resp.Header.Get("Content-Type"))
	}

	resp, body = do(t, ts, call{method: "POST", path: "/v1/bookings/" + b.ID + "/cancel", token: other})
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/bookings/" + b.ID + "/cancel", token: tok})
	expectStatus(t, resp, body, http.StatusOK)
	resp, body = do(t, ts, call{method: "POST", path: "/v1/bookings/" + b.ID + "/cancel", token: tok})
	expectStatus(t, resp, body, http.StatusConflict)
}

func TestBookingValidationMessages(t *testing.T) {
	ts := newTestServer(t)
	tok := signUp(t, ts, "alice@example.com", "Alice")

	cases := []struct {
		name   string
		body   map[string]any
		detail string
	}{
		{"past", map[string]any{"hotelId": "1", "checkInDate": "2024-05-19", "checkOutDate": "2024-05-21", "numberOfRooms": 1}, "check-in must be today or later"},
		{"same day", map[string]any{"hotelId": "1", "checkInDate": "2024-06-01", "checkOutDate": "2024-06-01", "numberOfRooms": 1}, "check-out must be after check-in"},
		{"rooms", map[string]any{"hotelId": "1", "checkInDate": "2024-06-01", "checkOutDate": "2024-06-02", "numberOfRooms": 0}, "rooms must be between 1 and 10"},
		{"bad date", map[string]any{"hotelId": "1", "checkInDate": "June 1st", "checkOutDate": "2024-06-02", "numberOfRooms": 1}, "checkInDate must be YYYY-MM-DD or RFC 3339"},
		{"missing hotel", map[string]any{"checkInDate": "2024-06-01", "checkOutDate": "2024-06-02", "numberOfRooms": 1}, "hotelId is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, ts, call{method: "POST", path: "/v1/bookings", token: tok, body: tc.body})
			expectStatus(t, resp, body, http.StatusBadRequest)
			if d := problemDetail(t, resp, body); d != tc.detail {
				t.Fatalf("detail = %q, want %q", d, tc.detail)
			}
		})
	}

	resp, body := do(t, ts, call{method: "POST", path: "/v1/bookings", token: tok, body: map[string]any{
		"hotelId": "999", "checkInDate": "2024-06-01", "checkOutDate": "2024-06-02", "numberOfRooms": 1,
	}})
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestReviewEndpoints(t *testing.T) {
	ts := newTestServer(t)
	tok := signUp(t, ts, "alice@example.com", "Alice")

	resp, body := do(t, ts, call{method: "POST", path: "/v1/hotels/2/reviews", token: tok, body: map[string]any{"rating": 6, "comment": "x"}})
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/hotels/2/reviews", token: tok, body: map[string]any{"rating": 4, "comment": "Nice pool"}})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = do(t, ts, call{method: "GET", path: "/v1/hotels/2/reviews"})
	expectStatus(t, resp, body, http.StatusOK)
	var list app.ReviewList
	_ = json.Unmarshal(body, &list)
	if len(list.Items) != 1 || list.Items[0].Author != "Alice" || list.Summary.Average != 4 {
		t.Fatalf("reviews = %s", body)
	}

	resp, body = do(t, ts, call{method: "GET", path: "/v1/hotels/2/reviews/me", token: tok})
	expectStatus(t, resp, body, http.StatusOK)
	if !strings.Contains(string(body), `"hasReviewed":true`) {
		t.Fatalf("hasReviewed = %s", body)
	}
}

func TestRenameAppliesBeforeTokenRefresh(t *testing.T) {
	ts := newTestServer(t)
	tok := signUp(t, ts, "alice@example.com", "Alice")

	resp, body := do(t, ts, call{method: "PATCH", path: "/v1/me", token: tok, body: map[string]string{"name": "Alicia"}})
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = do(t, ts, call{method: "POST", path: "/v1/hotels/1/reviews", token: tok, body: map[string]any{"rating": 5, "comment": "Great stay"}})
	expectStatus(t, resp, body, http.StatusCreated)
	var r domain.Review
	_ = json.Unmarshal(body, &r)
	if r.Author != "Alicia" {
		t.Fatalf("review author = %q, want Alicia", r.Author)
	}

	resp, body = do(t, ts, call{method: "POST", path: "/v1/bookings", token: tok, body: map[string]any{
		"hotelId": "1", "checkInDate": "2024-06-01", "checkOutDate": "2024-06-02", "numberOfRooms": 1,
	}})
	expectStatus(t, resp, body, http.StatusCreated)
	var b domain.Booking
	_ = json.Unmarshal(body, &b)
	if b.GuestName != "Alicia" {
		t.Fatalf("guest name = %q, want Alicia", b.GuestName)
	}
}
