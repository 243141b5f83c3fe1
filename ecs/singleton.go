package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives typed access to a value that belongs to the storage as a
// whole rather than to an entity: physics worlds, clocks, event queues.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton returns an accessor for T, creating the singleton from
// initializer (or the zero value) when it does not exist yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	if storage.getSingletonEntry(componentType) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{storage: storage, componentType: componentType}
	s.updateCache()
	return s
}

// Init binds the accessor to storage. The Scheduler calls this for
// Singleton fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.componentPtr = nil
	s.updateCache()
}

// Get returns the singleton, or nil when it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return (*T)(s.componentPtr)
}

// MustGet is Get for singletons that a system cannot run without.
func (s *Singleton[T]) MustGet() *T {
	v := s.Get()
	if v == nil {
		panic("ecs: missing singleton " + reflect.TypeFor[T]().String())
	}
	return v
}

// Exists reports whether the singleton is present.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(s.componentType); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}
