package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Commands buffers structural changes requested by a system. The Scheduler flushes the
// buffer after each system, so changes become visible to the next system in the pass.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()

	deleted *intmap.Map[EntityId, struct{}]
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{
		deleted: intmap.New[EntityId, struct{}](16),
	}
}

type spawnCommand struct {
	components []any
	onSpawn    func(EntityId)
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after the other commands of this flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnThen queues a spawn and calls onSpawn with the new id once it exists.
func (c *Commands) SpawnThen(onSpawn func(EntityId), components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components, onSpawn: onSpawn})
}

// Delete queues an entity deletion. Queuing the same entity twice deletes it once.
func (c *Commands) Delete(entity EntityId) {
	if c.isDeleted(entity) {
		return
	}
	c.deleted.Put(entity, struct{}{})
	c.deletes = append(c.deletes, entity)
}

// Deleting reports whether entity has a deletion queued in this buffer.
func (c *Commands) Deleting(entity EntityId) bool {
	return c.isDeleted(entity)
}

func (c *Commands) isDeleted(entity EntityId) bool {
	_, ok := c.deleted.Get(entity)
	return ok
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to storage in the order deletes, removes, adds,
// spawns, defers, then resets the buffer. Component changes on entities deleted in the
// same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.removes {
		if !c.isDeleted(cmd.entity) {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !c.isDeleted(cmd.entity) {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		id := storage.Spawn(cmd.components...)
		if cmd.onSpawn != nil {
			cmd.onSpawn(id)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.Reset()
}

// Reset drops every queued command without applying it.
func (c *Commands) Reset() {
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	c.deleted.Clear()
}
