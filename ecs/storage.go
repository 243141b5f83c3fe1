package ecs

import (
	"iter"
	"reflect"
	"sort"
	"unsafe"
)

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value // pointer to the singleton
	dataPtr unsafe.Pointer
}

// Storage is the entity store plus the set of process-wide singletons.
type Storage struct {
	archetypes map[uint32]*Archetype
	order      []uint32
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// NewStorage creates an empty storage backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry this storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes yields archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, id := range s.order {
			if !yield(s.archetypes[id]) {
				return
			}
		}
	}
}

// GetArchetype returns the archetype holding exactly the given component
// values' types, or nil.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// ArchetypeOf returns the archetype holding id, or nil for dead entities.
func (s *Storage) ArchetypeOf(id EntityId) *Archetype {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Has(id.Index()) {
		return nil
	}
	return archetype
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.order = append(s.order, id)
	}
	return archetype
}

// Spawn creates an entity from component values (or pointers to them).
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	index := archetype.Spawn(components)
	return NewEntityId(archetype.id, index)
}

// Delete removes the entity. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Has(id.Index())
}

// AddComponent moves the entity to the archetype that also carries
// component and returns its new ID.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if oldArchetype == nil || !oldArchetype.Has(id.Index()) {
		return 0
	}

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Pointer {
		compType = compType.Elem()
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	components := make([]any, 0, len(oldArchetype.types)+1)
	for _, typ := range oldArchetype.types {
		if typ == compType {
			continue
		}
		newTypes = append(newTypes, typ)
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}
	newTypes = append(newTypes, compType)
	components = append(components, component)
	sort.Sort(byTypeName(newTypes))

	return s.move(id, oldArchetype, newTypes, components)
}

// RemoveComponent moves the entity to the archetype without compType. An
// entity left with no components is deleted and 0 is returned.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if oldArchetype == nil || !oldArchetype.Has(id.Index()) {
		return 0
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types))
	components := make([]any, 0, len(oldArchetype.types))
	for _, typ := range oldArchetype.types {
		if typ == compType {
			continue
		}
		newTypes = append(newTypes, typ)
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}
	return s.move(id, oldArchetype, newTypes, components)
}

func (s *Storage) move(id EntityId, from *Archetype, types []reflect.Type, components []any) EntityId {
	to := s.archetypeFor(types)
	index := to.Spawn(components)
	from.Delete(id.Index())
	return NewEntityId(to.id, index)
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton for its type, replacing any
// previous one. Passing a pointer shares the pointee with the caller.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("ecs: nil singleton")
	}

	var ptr reflect.Value
	if v.Kind() == reflect.Pointer {
		ptr = v
	} else {
		ptr = reflect.New(v.Type())
		ptr.Elem().Set(v)
	}

	typ := ptr.Type().Elem()
	s.singletons[typ] = &singletonEntry{
		typ:     typ,
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton fills target (a **T) with the singleton of type T and
// reports whether it exists.
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(v.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// extractComponentTypes returns the sorted component types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType == nil {
			panic("ecs: nil component")
		}
		if compType.Kind() == reflect.Pointer {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of a sorted
// type list.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is anything that can look up a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
