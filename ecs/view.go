package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldMode uint8

const (
	fieldRequired fieldMode = iota
	fieldOptional
	fieldWithout
)

// View represents a filter over entities by component presence and absence.
//
// T must be a struct whose fields are pointers to component types. Fields are required by
// default; the `ecs:"optional"` tag makes a component optional (nil when absent) and the
// `ecs:"without"` tag excludes entities that have the component (the field is always nil).
// A field of type EntityId, named or embedded, receives the id of each matched entity.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	modes       []fieldMode
	fieldOffset []uintptr

	hasId    bool
	idOffset uintptr
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		mode := fieldRequired
		switch tag := field.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			mode = fieldOptional
		case "without":
			mode = fieldWithout
		default:
			panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" and \"without\" are supported)")
		}

		v.types = append(v.types, field.Type.Elem())
		v.modes = append(v.modes, mode)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// matchesArchetype checks that an archetype has every required type and no excluded type.
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, typ := range v.types {
		switch v.modes[i] {
		case fieldRequired:
			if !archetype.HasComponent(typ) {
				return false
			}
		case fieldWithout:
			if archetype.HasComponent(typ) {
				return false
			}
		}
	}
	return true
}

func (v *View[T]) buildColumnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, typ := range v.types {
		indices[i] = -1
		if v.modes[i] != fieldWithout {
			indices[i] = archetype.columnIndex(typ)
		}
	}
	return indices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, columnIndices []int) bool {
	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = NewEntityId(archetype.id, uint32(entityIndex))
	}

	for i, columnIdx := range columnIndices {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var component any
		if columnIdx != -1 {
			component = archetype.columns[columnIdx].Get(entityIndex)
		}
		if component == nil {
			if v.modes[i] == fieldRequired {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}
	return true
}

// Fill populates ptr with the components of entity id.
// It returns false if the entity is dead or does not match the view.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.index.Get(id.ArchetypeId())
	if !ok || !archetype.Alive(id.Index()) || !v.matchesArchetype(archetype) {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), archetype, int(id.Index()), v.buildColumnIndices(archetype))
}

// Get returns a populated view struct for the given entity, or nil if it does not match.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		indices := v.buildColumnIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)
		for entityIndex := range archetype.columns[0].Iter() {
			if !v.populateResult(resultPtr, archetype, entityIndex, indices) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(entityIndex)), result) {
				return
			}
		}
	}
}

// Iter yields every matching entity in archetype creation order, then slot order.
// Entities deleted during iteration are skipped.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		archetypes := v.storage.archetypes
		for _, archetype := range archetypes {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for _, archetype := range v.storage.archetypes {
		if v.matchesArchetype(archetype) {
			n += archetype.Len()
		}
	}
	return n
}

// Spawn creates a new entity from the non-nil component fields of data.
// Excluded fields are ignored; a nil required field panics.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, typ := range v.types {
		if v.modes[i] == fieldWithout {
			continue
		}

		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if v.modes[i] == fieldRequired {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(typ, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
