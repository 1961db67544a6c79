package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component type.
type FieldInfo struct {
	Name  string
	Type  reflect.Type
	Index int
	Kind  FieldKind
}

// FieldKind groups field types by how the inspector edits them.
type FieldKind uint8

const (
	FieldReadOnly FieldKind = iota
	FieldFloat
	FieldInt
	FieldUint
	FieldBool
	FieldString
)

func fieldKindOf(t reflect.Type) FieldKind {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return FieldFloat
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FieldInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FieldUint
	case reflect.Bool:
		return FieldBool
	case reflect.String:
		return FieldString
	}
	return FieldReadOnly
}

// ReflectionCache memoizes the editable layout of component types.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of t. A non-struct type such as a named float
// is reported as a single field named after the type, with Index -1.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() != reflect.Struct {
		fields = append(fields, FieldInfo{Name: t.Name(), Type: t, Index: -1, Kind: fieldKindOf(t)})
	} else {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:  field.Name,
				Type:  field.Type,
				Index: i,
				Kind:  fieldKindOf(field.Type),
			})
		}
	}

	rc.fields[t] = fields
	return fields
}

// fieldValue resolves info against a pointer to a component.
func fieldValue(component any, info FieldInfo) reflect.Value {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if info.Index < 0 {
		return val
	}
	return val.Field(info.Index)
}

// setNumber writes v into a numeric field, converting to the field's type.
// Negative values are ignored for unsigned fields.
func setNumber(field reflect.Value, v float64) bool {
	if !field.CanSet() {
		return false
	}
	switch fieldKindOf(field.Type()) {
	case FieldFloat:
		field.SetFloat(v)
	case FieldInt:
		field.SetInt(int64(v))
	case FieldUint:
		if v < 0 {
			return false
		}
		field.SetUint(uint64(v))
	default:
		return false
	}
	return true
}

var globalReflectionCache = NewReflectionCache()
