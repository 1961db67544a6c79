package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the entity/component store. Archetypes are kept in creation order so that
// iteration over the store is deterministic for a given sequence of operations.
type Storage struct {
	archetypes []*Archetype
	index      *intmap.Map[uint32, *Archetype]
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		index:      intmap.New[uint32, *Archetype](32),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetype returns the archetype holding exactly the given component types, if any.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.lookupArchetype(extractComponentTypes(components))
}

// GetArchetypeByTypes returns the archetype for the given component types, if any.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.lookupArchetype(sorted)
}

// GetArchetypes returns all archetypes in creation order.
func (s *Storage) GetArchetypes() []*Archetype {
	return s.archetypes
}

func (s *Storage) lookupArchetype(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	for {
		archetype, ok := s.index.Get(id)
		if !ok {
			return nil
		}
		if slices.Equal(archetype.types, types) {
			return archetype
		}
		id++
	}
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	for {
		archetype, ok := s.index.Get(id)
		if !ok {
			break
		}
		if slices.Equal(archetype.types, types) {
			return archetype
		}
		// Hash collision between different type sets, probe the next id.
		id++
	}

	archetype := NewArchetype(id, types, s.registry)
	s.index.Put(id, archetype)
	s.archetypes = append(s.archetypes, archetype)
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Delete removes the entity. Deleting a dead entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.index.Get(id.ArchetypeId())
	if !ok {
		return
	}
	archetype.Delete(id.Index())
}

// ArchetypeOf returns the archetype holding the live entity id, or nil.
func (s *Storage) ArchetypeOf(id EntityId) *Archetype {
	archetype, ok := s.index.Get(id.ArchetypeId())
	if !ok || !archetype.Alive(id.Index()) {
		return nil
	}
	return archetype
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.index.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.Alive(id.Index())
}

// AddComponent moves the entity to the archetype that also holds component and returns
// the entity's new id. Adding a type the entity already has replaces the value in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype, ok := s.index.Get(id.ArchetypeId())
	if !ok || !oldArchetype.Alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if idx := oldArchetype.columnIndex(compType); idx != -1 {
		dst := reflect.ValueOf(oldArchetype.columns[idx].Get(int(id.Index()))).Elem()
		src := reflect.ValueOf(component)
		if src.Kind() == reflect.Ptr {
			src = src.Elem()
		}
		dst.Set(src)
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	components = append(components, component)
	for _, typ := range oldArchetype.types {
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	return s.move(id, oldArchetype, newTypes, components)
}

// RemoveComponent moves the entity to the archetype without compType and returns its new id.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype, ok := s.index.Get(id.ArchetypeId())
	if !ok || !oldArchetype.Alive(id.Index()) {
		return 0
	}
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	components := make([]any, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}

	return s.move(id, oldArchetype, newTypes, components)
}

func (s *Storage) move(id EntityId, from *Archetype, types []reflect.Type, components []any) EntityId {
	to := s.archetypeFor(types)
	// Spawn copies the component values, so the old slot can be cleared afterwards.
	newIndex := to.Spawn(components)
	from.Delete(id.Index())
	return NewEntityId(to.id, newIndex)
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.index.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.index.Get(id.ArchetypeId())
	if !ok || !archetype.Alive(id.Index()) {
		return false
	}
	return archetype.HasComponent(compType)
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("component cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components are value types: structs or named primitives, never references.
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)
		if slices.Contains(types, compType) {
			panic("duplicate component type " + compType.String())
		}
		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates an FNV-1a hash over the names of a sorted slice of types.
// Names are stable between runs, which keeps archetype ids reproducible.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		name := t.PkgPath() + "." + t.String()
		for i := 0; i < len(name); i++ {
			h ^= uint32(name[i])
			h *= prime
		}
		h ^= 0xff
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to the T component of entityId, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer returns the pointer stored in an interface holding a pointer value.
func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
