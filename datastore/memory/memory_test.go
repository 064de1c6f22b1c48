/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/suparena/entityfactory/datastore"
	"github.com/suparena/entityfactory/datastore/memory"
	"github.com/suparena/entityfactory/errors"
)

type TestEntity struct {
	ID   string
	Name string
}

var _ datastore.DataStore[TestEntity] = (*memory.DataStore[TestEntity])(nil)

func TestMemoryDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		store := memory.New[TestEntity]()

		// Test Put
		entity := TestEntity{ID: "123", Name: "Test"}
		err := store.Put(ctx, "123", entity)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		// Test GetOne
		retrieved, err := store.GetOne(ctx, "123")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.ID != "123" || retrieved.Name != "Test" {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		// Test Delete
		err = store.Delete(ctx, "123")
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		// Verify deletion
		_, err = store.GetOne(ctx, "123")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}

		// Delete of a missing key
		if err := store.Delete(ctx, "123"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("EmptyKeyRejected", func(t *testing.T) {
		store := memory.New[TestEntity]()

		err := store.Put(ctx, "", TestEntity{Name: "NoKey"})
		if !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("IdenticalRecordsUnderDistinctKeys", func(t *testing.T) {
		store := memory.New[TestEntity]()
		entity := TestEntity{Name: "Same"}

		if err := store.Put(ctx, "a", entity); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Put(ctx, "b", entity); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if store.Count() != 2 {
			t.Fatalf("Expected 2 records, got %d", store.Count())
		}

		keys := store.Keys()
		if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
			t.Fatalf("Expected keys [a b], got %v", keys)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		store := memory.New[TestEntity]()

		// Simulate Put error
		putErr := errors.NewValidationError("name", "required")
		store.WithPutError(putErr)

		err := store.Put(ctx, "123", TestEntity{ID: "123", Name: "Test"})
		if err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}

		// Simulate GetOne error
		getErr := errors.NewNotFoundError("TestEntity", "x")
		store.WithGetError(getErr)
		if _, err := store.GetOne(ctx, "x"); err != getErr {
			t.Fatalf("Expected get error, got: %v", err)
		}

		// Simulate Delete error
		deleteErr := errors.NewAlreadyExistsError("TestEntity", "123")
		store.WithDeleteError(deleteErr)

		err = store.Delete(ctx, "123")
		if err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
	})

	t.Run("HelperMethods", func(t *testing.T) {
		store := memory.New[TestEntity]()

		// Test SetData
		testData := map[string]TestEntity{
			"1": {ID: "1", Name: "One"},
			"2": {ID: "2", Name: "Two"},
		}
		store.SetData(testData)

		// Test Count
		if store.Count() != 2 {
			t.Fatalf("Expected count 2, got %d", store.Count())
		}

		// Test GetData
		data := store.GetData()
		if len(data) != 2 {
			t.Fatalf("Expected 2 items in data, got %d", len(data))
		}

		// Test Clear
		store.Clear()
		if store.Count() != 0 {
			t.Fatalf("Expected count 0 after clear, got %d", store.Count())
		}
		if len(store.Keys()) != 0 {
			t.Fatalf("Expected no keys after clear, got %v", store.Keys())
		}
	})
}

func TestMemoryDataStoreConcurrentPut(t *testing.T) {
	ctx := context.Background()
	store := memory.New[TestEntity]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", id)
			store.Put(ctx, key, TestEntity{ID: key})
		}(i)
	}
	wg.Wait()

	if store.Count() != 50 {
		t.Fatalf("Expected 50 records, got %d", store.Count())
	}
}

func TestMemoryDataStoreErrorInjectionWhileInUse(t *testing.T) {
	ctx := context.Background()
	store := memory.New[TestEntity]()
	injected := fmt.Errorf("injected")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", id)
			store.Put(ctx, key, TestEntity{ID: key})
			store.GetOne(ctx, key)
			store.Delete(ctx, key)
		}(i)
		go func(id int) {
			defer wg.Done()
			if id%2 == 0 {
				store.WithGetError(injected).WithPutError(injected).WithDeleteError(injected)
				return
			}
			store.WithGetError(nil).WithPutError(nil).WithDeleteError(nil)
		}(i)
	}
	wg.Wait()

	store.WithPutError(injected)
	if err := store.Put(ctx, "after", TestEntity{ID: "after"}); err != injected {
		t.Fatalf("Expected injected error, got %v", err)
	}
	store.WithPutError(nil)
	if err := store.Put(ctx, "after", TestEntity{ID: "after"}); err != nil {
		t.Fatalf("Put failed after clearing error: %v", err)
	}
}
