package ecs

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrInvalidEntity reports a component write against a dead or unallocated id.
	ErrInvalidEntity = errors.New("invalid entity")
	// ErrAliasedStore reports a join that names the same store twice.
	ErrAliasedStore = errors.New("store joined with itself")
)

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Column is the type-erased view of a store used by Join.
type Column interface {
	Has(id EntityID) bool
	Len() int
	ids() []EntityID
}

// Store is a generic sparse component column. Components are held by pointer,
// so the pointer returned from Get is the mutable handle for that entity.
// Iteration follows insertion order; Remove swaps the last entry into the hole.
// No locking: stores are touched from the game loop goroutine only.
type Store[T any] struct {
	pool  *EntityPool
	data  map[EntityID]*T
	index map[EntityID]int
	dense []EntityID
}

// Register creates a store for component type T bound to w and registers it
// for bulk removal when entities are destroyed.
func Register[T any](w *World) *Store[T] {
	s := &Store[T]{
		pool:  w.pool,
		data:  make(map[EntityID]*T, 64),
		index: make(map[EntityID]int, 64),
		dense: make([]EntityID, 0, 64),
	}
	w.registry.Register(s)
	return s
}

// Set attaches c to id, replacing any previous component of this kind.
// Attaching to a dead entity is a programmer error and panics.
func (s *Store[T]) Set(id EntityID, c *T) {
	if !s.pool.Alive(id) {
		panic(fmt.Errorf("set %T on %v: %w", c, id, ErrInvalidEntity))
	}
	if c == nil {
		c = new(T)
	}
	if _, ok := s.data[id]; !ok {
		s.index[id] = len(s.dense)
		s.dense = append(s.dense, id)
	}
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.dense[last]
		s.dense[i] = moved
		s.index[moved] = i
	}
	s.dense = s.dense[:last]
	delete(s.index, id)
	delete(s.data, id)
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// All yields every (entity, component) pair in insertion order. The sequence
// is lazy and may be ranged over any number of times.
func (s *Store[T]) All() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		for _, id := range s.snapshot() {
			c, ok := s.data[id]
			if !ok {
				continue
			}
			if !yield(id, c) {
				return
			}
		}
	}
}

// Each calls fn for every component in insertion order.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.All() {
		fn(id, c)
	}
}

func (s *Store[T]) ids() []EntityID { return s.dense }

// snapshot copies the dense order so callers may remove entries mid-iteration.
func (s *Store[T]) snapshot() []EntityID {
	out := make([]EntityID, len(s.dense))
	copy(out, s.dense)
	return out
}
