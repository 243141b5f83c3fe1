package ecs

import "fmt"

// EntityId packs the owning archetype (upper 32 bits) and the slot index
// inside that archetype's storages (lower 32 bits).
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the ID.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the ID.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// String formats the id as archetype:index.
func (e EntityId) String() string {
	return fmt.Sprintf("%08x:%d", e.ArchetypeId(), e.Index())
}
