package ecs

import "reflect"

type commandKind uint8

const (
	cmdSpawn commandKind = iota
	cmdDelete
	cmdAdd
	cmdRemove
	cmdDefer
)

type command struct {
	kind       commandKind
	entity     EntityId
	components []any
	compType   reflect.Type
	fn         func()
}

// Commands buffers structural changes requested while systems iterate, so
// that columns never move under a running Query. The Scheduler flushes the
// buffer after the last system of a frame.
type Commands struct {
	queue []command
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity creation.
func (c *Commands) Spawn(components ...any) {
	c.queue = append(c.queue, command{kind: cmdSpawn, components: components})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.queue = append(c.queue, command{kind: cmdDelete, entity: entity})
}

// AddComponent queues adding component to entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.queue = append(c.queue, command{kind: cmdAdd, entity: entity, components: []any{component}})
}

// RemoveComponent queues removing compType from entity.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.queue = append(c.queue, command{kind: cmdRemove, entity: entity, compType: compType})
}

// Defer queues fn to run during the flush, after every structural change
// queued before it.
func (c *Commands) Defer(fn func()) {
	c.queue = append(c.queue, command{kind: cmdDefer, fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Flush applies queued commands in order and empties the buffer. Component
// changes aimed at an entity deleted earlier in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool)

	for _, cmd := range c.queue {
		switch cmd.kind {
		case cmdSpawn:
			storage.Spawn(cmd.components...)
		case cmdDelete:
			storage.Delete(cmd.entity)
			deleted[cmd.entity] = true
		case cmdAdd:
			if !deleted[cmd.entity] {
				storage.AddComponent(cmd.entity, cmd.components[0])
			}
		case cmdRemove:
			if !deleted[cmd.entity] {
				storage.RemoveComponent(cmd.entity, cmd.compType)
			}
		case cmdDefer:
			cmd.fn()
		}
	}

	clear(c.queue)
	c.queue = c.queue[:0]
}
