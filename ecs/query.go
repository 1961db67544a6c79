package ecs

import "iter"

// Query is a View that caches the list of matching archetypes between calls.
// Declare Query fields on a System; the Scheduler initializes them on Register.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a new Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) archetypes() []*Archetype {
	if q.storage == nil {
		panic("Query used before Init")
	}

	// Archetypes are only ever appended, so a count change is enough to detect new ones.
	if n := len(q.storage.archetypes); n != q.lastArchetypeCount {
		cached := make([]*Archetype, 0, len(q.cachedArchetypes)+1)
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				cached = append(cached, archetype)
			}
		}
		q.cachedArchetypes = cached
		q.lastArchetypeCount = n
	}
	return q.cachedArchetypes
}

// Iter returns an iterator over entity IDs and component data.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.archetypes() {
			for id, item := range q.view.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for _, archetype := range q.archetypes() {
		n += archetype.Len()
	}
	return n
}

// Get returns the view struct for id, or nil if id does not match.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}
