package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is the type-erased column an Archetype keeps per component type.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry knows how to build a column for every registered
// component type. Each Storage owns exactly one registry.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent makes T usable as a component. Spawning an entity with an
// unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage stores values of T in fixed-size blocks so that pointers
// handed out by Get stay valid while the column grows.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (s *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(s.freeSlots); n > 0 {
		index = s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
	} else {
		index = s.nextIndex
		s.nextIndex++
		if index/blockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, new([blockSize]T))
			s.filled = append(s.filled, [blockSize]bool{})
		}
	}

	s.blocks[index/blockSize][index%blockSize] = value
	s.filled[index/blockSize][index%blockSize] = true
	s.count++
	return index
}

func (s *blockStorage[T]) Get(index int) any {
	if !s.Has(index) {
		return nil
	}
	return &s.blocks[index/blockSize][index%blockSize]
}

func (s *blockStorage[T]) Delete(index int) {
	if !s.Has(index) {
		return
	}
	var zero T
	s.blocks[index/blockSize][index%blockSize] = zero
	s.filled[index/blockSize][index%blockSize] = false
	s.freeSlots = append(s.freeSlots, index)
	s.count--
}

func (s *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= s.nextIndex {
		return false
	}
	return s.filled[index/blockSize][index%blockSize]
}

func (s *blockStorage[T]) Len() int {
	return s.count
}

func (s *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < s.nextIndex; i++ {
			if !s.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
