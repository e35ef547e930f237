package enrichment

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/observability"
)

// Client talks to the two optional enrichment feeds: a product feed that is
// mapped into deal hotels, and a current-weather API.
type Client struct {
	dealsBase   string
	weatherBase string
	weatherKey  string
	hc          *http.Client
	rl          *rate.Limiter
}

func New(dealsBase, weatherBase, weatherKey string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		dealsBase:   strings.TrimRight(dealsBase, "/"),
		weatherBase: strings.TrimRight(weatherBase, "/"),
		weatherKey:  weatherKey,
		hc:          &http.Client{Timeout: 20 * time.Second},
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
	}
}

var (
	ErrNotFound     = errors.New("enrichment: not found")
	ErrUnauthorized = errors.New("enrichment: unauthorized")
	ErrForbidden    = errors.New("enrichment: forbidden")
	ErrNoAPIKey     = errors.New("enrichment: weather api key not configured")
)

// GetDeals returns raw product payloads; limit <= 0 fetches the whole feed.
func (c *Client) GetDeals(ctx context.Context, limit int) ([]map[string]any, error) {
	u := c.dealsBase + "/products"
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	var out []map[string]any
	return out, c.get(ctx, "deals", u, &out)
}

// GetWeather returns the raw current-weather payload in metric units.
func (c *Client) GetWeather(ctx context.Context, lat, lon float64) (map[string]any, error) {
	if c.weatherKey == "" {
		return nil, ErrNoAPIKey
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.weatherKey)
	q.Set("units", "metric")
	var out map[string]any
	return out, c.get(ctx, "weather", c.weatherBase+"/weather?"+q.Encode(), &out)
}

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, service, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-booking/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(service, "get", 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal(service, "get", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// StatusOf maps a client error to the HTTP status it came from, or 0.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date); 0 if absent or invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
