package dao

import (
	"fmt"
	"reflect"
)

// Accessors maps resource ID strings to their accessor implementations.
type Accessors map[string]Accessor

// accessors holds all registered DAOs.
var accessors = make(Accessors)

// RegisterAccessor adds an accessor to the global registry.
func RegisterAccessor(rid *ResourceID, accessor Accessor) {
	accessors[rid.String()] = accessor
}

// AccessorFor returns a new initialized accessor instance for the given resource ID.
func AccessorFor(f Factory, rid *ResourceID) (Accessor, error) {
	accessor, ok := accessors[rid.String()]
	if !ok {
		return nil, fmt.Errorf("no accessor for: %s", rid.String())
	}

	// Create new instance using reflection
	accessorType := reflect.TypeOf(accessor)
	if accessorType.Kind() == reflect.Ptr {
		accessorType = accessorType.Elem()
	}
	newInstance := reflect.New(accessorType).Interface()

	acc, ok := newInstance.(Accessor)
	if !ok {
		return nil, fmt.Errorf("failed to create accessor for: %s", rid.String())
	}

	acc.Init(f, rid)
	if cp, ok := f.(interface{ Cache() *ResourceCache }); ok {
		if c, ok := newInstance.(interface{ SetCache(*ResourceCache) }); ok {
			c.SetCache(cp.Cache())
		}
	}
	return acc, nil
}
