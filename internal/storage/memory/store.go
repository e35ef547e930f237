// Package memory holds in-process implementations of the storage ports, used in
// dev mode and tests.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"hotel_booking/internal/domain"
)

type collection struct {
	order []string
	docs  map[string]bson.M
}

// Store is a DocumentStore that keeps BSON documents in memory. Documents go
// through the same codec as the Mongo adapter so tags behave identically.
type Store struct {
	mu   sync.RWMutex
	cols map[string]*collection
}

func NewStore() *Store { return &Store{cols: map[string]*collection{}} }

func (s *Store) col(name string) *collection {
	c, ok := s.cols[name]
	if !ok {
		c = &collection{docs: map[string]bson.M{}}
		s.cols[name] = c
	}
	return c
}

func toM(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) Create(ctx context.Context, name string, doc any) (string, error) {
	m, err := toM(doc)
	if err != nil {
		return "", domain.Persistence("encode "+name, err)
	}
	id := uuid.NewString()
	m["_id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.col(name)
	c.docs[id] = m
	c.order = append(c.order, id)
	return id, nil
}

func (s *Store) Get(ctx context.Context, name, id string, dst any) error {
	s.mu.RLock()
	var raw []byte
	if c, ok := s.cols[name]; ok {
		if m, found := c.docs[id]; found {
			raw, _ = bson.Marshal(m)
		}
	}
	s.mu.RUnlock()
	if raw == nil {
		return domain.ErrNotFound
	}
	return decode(raw, dst)
}

// Query decodes every matching document into dst, which must point to a slice.
func (s *Store) Query(ctx context.Context, name string, filters []domain.Filter, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("memory: query destination must be a pointer to a slice, got %T", dst)
	}
	slice := rv.Elem()
	elemType := slice.Type().Elem()

	var matched [][]byte
	s.mu.RLock()
	if c, ok := s.cols[name]; ok {
		for _, id := range c.order {
			if m := c.docs[id]; matches(m, filters) {
				raw, _ := bson.Marshal(m)
				matched = append(matched, raw)
			}
		}
	}
	s.mu.RUnlock()

	out := reflect.MakeSlice(slice.Type(), 0, len(matched))
	for _, raw := range matched {
		item := reflect.New(elemType)
		if err := decode(raw, item.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, item.Elem())
	}
	slice.Set(out)
	return nil
}

func (s *Store) Update(ctx context.Context, name, id string, fields map[string]any) error {
	patch, err := toM(fields)
	if err != nil {
		return domain.Persistence("encode "+name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.col(name).docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range patch {
		m[k] = v
	}
	return nil
}

func matches(m bson.M, filters []domain.Filter) bool {
	for _, f := range filters {
		if !reflect.DeepEqual(m[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func decode(raw []byte, dst any) error {
	if err := bson.Unmarshal(raw, dst); err != nil {
		return domain.Persistence("decode", err)
	}
	return nil
}
