package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"hotel_booking/internal/domain"
)

var testNow = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

var (
	alice = domain.Principal{UserID: "u-alice", Name: "Alice", Email: "alice@example.com"}
	bob   = domain.Principal{UserID: "u-bob", Name: "Bob", Email: "bob@example.com"}
)

// ---- cache ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	c.store[key] = b
	return err
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

// ---- events ----

type published struct {
	Topic, Key string
	Payload    any
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *fakePublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{topic, key, payload})
	return nil
}

func (p *fakePublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.sent {
		out = append(out, e.Topic)
	}
	return out
}

// ---- store that always fails ----

type brokenStore struct{ err error }

func (s brokenStore) Create(context.Context, string, any) (string, error)          { return "", s.err }
func (s brokenStore) Get(context.Context, string, string, any) error               { return s.err }
func (s brokenStore) Query(context.Context, string, []domain.Filter, any) error    { return s.err }
func (s brokenStore) Update(context.Context, string, string, map[string]any) error { return s.err }

var errConnReset = errors.New("connection reset by peer")

// ---- enrichment ----

type fakeEnrich struct {
	deals      []map[string]any
	dealsErr   error
	weather    map[string]any
	weatherErr error
	calls      int
}

func (f *fakeEnrich) GetDeals(ctx context.Context, limit int) ([]map[string]any, error) {
	f.calls++
	return f.deals, f.dealsErr
}

func (f *fakeEnrich) GetWeather(ctx context.Context, lat, lon float64) (map[string]any, error) {
	f.calls++
	return f.weather, f.weatherErr
}

// ---- auth ----

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (plainHasher) Compare(hash, pw string) error {
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(p domain.Principal) (string, time.Time, error) {
	return "tok:" + p.UserID + ":" + strings.ToLower(p.Name), testNow.Add(time.Hour), nil
}
