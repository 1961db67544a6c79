package ecs

import (
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of component types.
// Columns are index-aligned: slot i of every column belongs to the same entity.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
}

// NewArchetype creates an archetype for the given sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
	}
	for idx, typ := range types {
		a.columns[idx] = registry.newColumn(typ)
	}
	return a
}

// Spawn appends one entity built from components and returns its slot index.
// components must hold exactly one value (or pointer to value) per archetype type.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for idx, typ := range a.types {
		var comp any
		for _, c := range components {
			if componentType(c) == typ {
				comp = c
				break
			}
		}
		if comp == nil {
			panic("missing component " + typ.String() + " for archetype spawn")
		}

		pos := a.columns[idx].Append(comp)
		if slot != -1 && pos != slot {
			panic("archetype columns out of alignment")
		}
		slot = pos
	}
	return uint32(slot)
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of compType in slot entityIndex,
// or nil if the archetype lacks the type or the slot is empty.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.columns[idx].Get(int(entityIndex))
}

// Delete clears slot entityIndex in every column. The slot is reused by later spawns.
func (a *Archetype) Delete(entityIndex uint32) {
	for _, column := range a.columns {
		column.Delete(int(entityIndex))
	}
}

// Alive reports whether slot entityIndex currently holds an entity.
func (a *Archetype) Alive(entityIndex uint32) bool {
	if len(a.columns) == 0 {
		return false
	}
	return a.columns[0].Has(int(entityIndex))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter returns an iterator over all live EntityIds in this archetype, in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
