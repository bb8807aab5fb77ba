package debugui

import (
	"reflect"
	"sync"

	"github.com/plus3/stagecraft/ecs"
)

var (
	isComponentType = reflect.TypeFor[ecs.IsComponent]()
	isResourceType  = reflect.TypeFor[ecs.IsResource]()
	entityType      = reflect.TypeFor[ecs.Entity]()
)

// FieldKind selects the widget the inspector draws for a field.
type FieldKind int

const (
	FieldPlain FieldKind = iota
	FieldEntity
	FieldEntities
	FieldVec3
	FieldStruct
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	Kind      FieldKind
}

// ReflectionCache memoizes the inspectable fields of component and resource
// types. Marker embeds and unexported fields are left out.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	fields := inspectFields(t)
	rc.fieldCache[t] = fields
	return fields
}

func inspectFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type == isComponentType || field.Type == isResourceType {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Ptr
		if isPointer {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     i,
			IsPointer: isPointer,
			Kind:      fieldKind(fieldType),
		})
	}
	return fields
}

func fieldKind(t reflect.Type) FieldKind {
	switch {
	case t == entityType:
		return FieldEntity
	case t.Kind() == reflect.Slice && t.Elem() == entityType:
		return FieldEntities
	case t.Kind() == reflect.Array && t.Len() == 3 && t.Elem().Kind() == reflect.Float64:
		return FieldVec3
	case t.Kind() == reflect.Struct:
		return FieldStruct
	}
	return FieldPlain
}

var globalReflectionCache = NewReflectionCache()
