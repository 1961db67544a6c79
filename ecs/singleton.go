package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the singleton of its type, replacing any previous value.
// Existing Singleton accessors keep pointing at the same storage cell.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		panic("singleton value cannot be nil")
	}
	s.putSingleton(t, reflect.ValueOf(value))
}

func (s *Storage) putSingleton(t reflect.Type, value reflect.Value) {
	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(value)
		return
	}

	cell := reflect.New(t)
	cell.Elem().Set(value)
	s.singletons[t] = &singletonEntry{
		value:   cell,
		dataPtr: cell.UnsafePointer(),
	}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton sets *target to the singleton of the pointed-to type.
// target must be a **T; it returns false when no singleton of type T exists.
func (s *Storage) ReadSingleton(target any) bool {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(ptr.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	ptr.Elem().Set(entry.value)
	return true
}

// SingletonTypes returns the names of all stored singleton types, sorted.
func (s *Storage) SingletonTypes() []string {
	names := make([]string, 0, len(s.singletons))
	for t := range s.singletons {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// Singleton provides access to a single component instance that is not associated
// with any entity. Use it for process-wide state such as clocks and counters.
type Singleton[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
}

// NewSingleton creates a Singleton accessor, storing initializer (or the zero value)
// if the singleton does not exist yet. The singleton exists in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.putSingleton(t, reflect.ValueOf(&value).Elem())
	}

	s := &Singleton[T]{storage: storage}
	s.updateCache()
	return s
}

// Init binds the Singleton to a storage. The Scheduler calls it during registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentPtr = nil
	s.updateCache()
}

// Get returns a pointer to the singleton, or nil if it has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return (*T)(s.componentPtr)
}

// MustGet is Get that panics when the singleton is missing.
func (s *Singleton[T]) MustGet() *T {
	v := s.Get()
	if v == nil {
		panic("singleton " + reflect.TypeFor[T]().String() + " not present in storage")
	}
	return v
}

// Exists returns true if the singleton has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	}
}
