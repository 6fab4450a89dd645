package repo

import (
	"context"
	"reflect"
	"slices"
	"sync"
)

// MemoryStore keeps rows in process memory in insertion order.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	table *Table[T]
	rows  map[string]*T
	order []string
}

func NewMemoryStore[T any](table *Table[T]) *MemoryStore[T] {
	return &MemoryStore[T]{table: table, rows: map[string]*T{}}
}

func (s *MemoryStore[T]) Create(_ context.Context, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.table.ID(v)
	if _, ok := s.rows[id]; ok {
		return ErrDuplicate
	}
	c := *v
	s.rows[id] = &c
	s.order = append(s.order, id)
	return nil
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *v
	return &c, nil
}

func (s *MemoryStore[T]) List(ctx context.Context) ([]*T, error) {
	return s.Find(ctx)
}

func (s *MemoryStore[T]) Find(_ context.Context, conds ...Cond) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*T{}
	for _, id := range s.order {
		v := s.rows[id]
		if !s.match(v, conds) {
			continue
		}
		c := *v
		out = append(out, &c)
	}
	return out, nil
}

func (s *MemoryStore[T]) Save(_ context.Context, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.table.ID(v)
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	c := *v
	s.rows[id] = &c
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == id })
	return nil
}

func (s *MemoryStore[T]) match(v *T, conds []Cond) bool {
	if len(conds) == 0 {
		return true
	}
	values := s.table.Values(v)
	for _, c := range conds {
		i := s.table.index(c.Column)
		if i < 0 || !reflect.DeepEqual(values[i], c.Value) {
			return false
		}
	}
	return true
}
