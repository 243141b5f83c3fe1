package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly the same set of component
// types. Columns are kept in lockstep so a slot index addresses one entity
// across all of them.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
}

// NewArchetype creates an archetype for the given sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn appends one entity and returns its slot index. Every archetype type
// must be present in components.
func (a *Archetype) Spawn(components []any) uint32 {
	ordered := make([]any, len(a.types))
	for idx, typ := range a.types {
		comp := findComponent(components, typ)
		if comp == nil {
			panic("ecs: missing component " + typ.String() + " for archetype spawn")
		}
		ordered[idx] = comp
	}

	slot := -1
	for idx, comp := range ordered {
		pos := a.storages[idx].Append(comp)
		if slot != -1 && pos != slot {
			panic("ecs: archetype columns out of step")
		}
		slot = pos
	}
	return uint32(slot)
}

func findComponent(components []any, typ reflect.Type) any {
	for _, comp := range components {
		if comp == nil {
			continue
		}
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Pointer {
			compType = compType.Elem()
		}
		if compType == typ {
			return comp
		}
	}
	return nil
}

func (a *Archetype) columnOf(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of compType stored at
// entityIndex, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.columnOf(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete frees the slot in every column. Other slots keep their indices.
func (a *Archetype) Delete(entityIndex uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// Has reports whether entityIndex addresses a live entity.
func (a *Archetype) Has(entityIndex uint32) bool {
	if len(a.storages) == 0 {
		return false
	}
	return a.storages[0].Has(int(entityIndex))
}

// HasComponent reports whether this archetype carries compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields every live EntityId in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
