/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/entityfactory/errors"
)

// indexMapRegistry associates record types with their key templates.
var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	mu               sync.RWMutex
)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterIndexMap associates record type T with an index map (PK, SK, GSI keys).
// Registering T again replaces the previous map.
func RegisterIndexMap[T any](idxMap map[string]string) {
	copied := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		copied[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[typeOf[T]()] = copied
}

// GetIndexMap retrieves the index map for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[typeOf[T]()]
	return m, ok
}

// IndexMapFor is GetIndexMap with a semantic error for unregistered types.
func IndexMapFor[T any]() (map[string]string, error) {
	m, ok := GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrNoIndexMap, typeOf[T]())
	}
	return m, nil
}

// UnregisterIndexMap removes the index map for type T.
func UnregisterIndexMap[T any]() {
	mu.Lock()
	defer mu.Unlock()
	delete(indexMapRegistry, typeOf[T]())
}
