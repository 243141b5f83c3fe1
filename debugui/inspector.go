package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

// FieldInfo describes one exported struct field.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// ReflectionCache remembers the exported fields of each struct type.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

// NewReflectionCache creates an empty cache.
func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of struct type t.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      field.Type,
				Index:     i,
				IsPointer: field.Type.Kind() == reflect.Pointer,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()

// FieldRow is one rendered line of the component inspector.
type FieldRow struct {
	Name  string
	Value string
	Depth int
}

// DescribeComponent flattens the exported fields of component (a value or a
// pointer to one) into inspector rows. Nested structs are expanded one level
// deeper; funcs and pointers are summarised.
func DescribeComponent(component any) []FieldRow {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return []FieldRow{{Name: "value", Value: fmt.Sprint(val.Interface())}}
	}
	return describeStruct(val, 0, nil)
}

func describeStruct(val reflect.Value, depth int, rows []FieldRow) []FieldRow {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fv := val.Field(field.Index)
		switch fv.Kind() {
		case reflect.Func:
			rows = append(rows, FieldRow{Name: field.Name, Value: funcSummary(fv), Depth: depth})
		case reflect.Pointer:
			if fv.IsNil() {
				rows = append(rows, FieldRow{Name: field.Name, Value: "nil", Depth: depth})
			} else {
				rows = append(rows, FieldRow{Name: field.Name, Value: fv.Type().String(), Depth: depth})
			}
		case reflect.Struct:
			if stringer, ok := fv.Interface().(fmt.Stringer); ok {
				rows = append(rows, FieldRow{Name: field.Name, Value: stringer.String(), Depth: depth})
				continue
			}
			rows = append(rows, FieldRow{Name: field.Name, Value: fv.Type().String(), Depth: depth})
			rows = describeStruct(fv, depth+1, rows)
		case reflect.Slice, reflect.Map:
			rows = append(rows, FieldRow{Name: field.Name, Value: fmt.Sprintf("[%d items]", fv.Len()), Depth: depth})
		case reflect.Interface:
			if fv.IsNil() {
				rows = append(rows, FieldRow{Name: field.Name, Value: "nil", Depth: depth})
			} else {
				rows = append(rows, FieldRow{Name: field.Name, Value: fmt.Sprint(fv.Interface()), Depth: depth})
			}
		default:
			rows = append(rows, FieldRow{Name: field.Name, Value: fmt.Sprint(fv.Interface()), Depth: depth})
		}
	}
	return rows
}

func funcSummary(fv reflect.Value) string {
	if fv.IsNil() {
		return "nil"
	}
	return "func"
}
