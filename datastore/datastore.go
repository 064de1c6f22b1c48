/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// DataStore persists records of type T under caller-supplied keys.
// GetOne and Delete report a missing key with errors.NotFoundError.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, key string, entity T) error

	Delete(ctx context.Context, key string) error
}
