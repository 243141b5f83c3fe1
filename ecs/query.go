package ecs

import "iter"

// Query is a View whose matching archetypes and rows are cached for the
// duration of a frame. The Scheduler calls Execute on every Query field of
// every registered system before the first system runs.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds (or rebinds) the query to storage and drops all caches.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the per-frame row cache.
func (q *Query[T]) Execute() {
	if count := len(q.storage.archetypes); count != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = count
	}
	if q.cachedArchetypes == nil {
		q.cachedArchetypes = make([]*Archetype, 0)
		for archetype := range q.storage.Archetypes() {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]
	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

// Iter yields the rows cached by the last Execute. It panics if Execute has
// never run.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("ecs: Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Entities yields (EntityId, row) pairs from the cache.
func (q *Query[T]) Entities() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("ecs: Query.Entities() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of cached rows.
func (q *Query[T]) Len() int {
	return len(q.cachedComponents)
}
