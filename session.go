/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

import (
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entityfactory/datastore"
	"github.com/suparena/entityfactory/errors"
)

// TypedStorage holds the datastores for record type T, keyed by entity kind.
type TypedStorage[T any] struct {
	mu     sync.RWMutex
	stores map[string]datastore.DataStore[T]
}

// NewTypedStorage creates a new TypedStorage for type T
func NewTypedStorage[T any]() *TypedStorage[T] {
	return &TypedStorage[T]{
		stores: make(map[string]datastore.DataStore[T]),
	}
}

// Register adds a datastore for the given kind
func (ts *TypedStorage[T]) Register(kind string, ds datastore.DataStore[T]) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[kind]; exists {
		return errors.NewAlreadyExistsError("datastore", kind)
	}

	ts.stores[kind] = ds
	return nil
}

// Get retrieves the datastore for a kind
func (ts *TypedStorage[T]) Get(kind string) (datastore.DataStore[T], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	ds, exists := ts.stores[kind]
	if !exists {
		return nil, errors.NewNotFoundError("datastore", kind)
	}

	return ds, nil
}

// Remove deletes the datastore for a kind
func (ts *TypedStorage[T]) Remove(kind string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.stores[kind]; !exists {
		return errors.NewNotFoundError("datastore", kind)
	}

	delete(ts.stores, kind)
	return nil
}

// List returns all registered kinds in sorted order
func (ts *TypedStorage[T]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	kinds := make([]string, 0, len(ts.stores))
	for k := range ts.stores {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Session is the persistence context factories create entities in.
// It maps each (record type, kind) pair to the datastore that owns those
// records. A Session is always passed explicitly; nothing in this module
// keeps one as ambient state.
type Session struct {
	mu       sync.RWMutex
	storages map[reflect.Type]any
}

// NewSession creates an empty Session
func NewSession() *Session {
	return &Session{
		storages: make(map[reflect.Type]any),
	}
}

// GetTypedStorage returns the TypedStorage for type T, creating it if necessary
func GetTypedStorage[T any](s *Session) *TypedStorage[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	typ := reflect.TypeOf((*T)(nil)).Elem()

	if storage, exists := s.storages[typ]; exists {
		return storage.(*TypedStorage[T])
	}

	newStorage := NewTypedStorage[T]()
	s.storages[typ] = newStorage
	return newStorage
}

// RegisterDataStore registers the datastore holding records of type T for kind
func RegisterDataStore[T any](s *Session, kind string, ds datastore.DataStore[T]) error {
	return GetTypedStorage[T](s).Register(kind, ds)
}

// GetDataStore returns the datastore holding records of type T for kind
func GetDataStore[T any](s *Session, kind string) (datastore.DataStore[T], error) {
	return GetTypedStorage[T](s).Get(kind)
}

// RemoveDataStore unregisters the datastore for type T and kind
func RemoveDataStore[T any](s *Session, kind string) error {
	return GetTypedStorage[T](s).Remove(kind)
}

// ListDataStores lists the kinds registered for type T
func ListDataStores[T any](s *Session) []string {
	return GetTypedStorage[T](s).List()
}
