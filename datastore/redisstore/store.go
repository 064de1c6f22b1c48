/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package redisstore implements datastore.DataStore on Redis.
// Records are stored as JSON under <prefix><kind>:<key>.
package redisstore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/suparena/entityfactory/errors"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "entityfactory:"

// Store implements datastore.DataStore[T] using Redis.
type Store[T any] struct {
	client *backend.Client
	kind   string
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	prefix string
	ttl    time.Duration
}

// WithTTL sets the expiration for stored records.
func WithTTL(ttl time.Duration) Option {
	return func(o *storeOptions) {
		o.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored records.
func WithPrefix(prefix string) Option {
	return func(o *storeOptions) {
		o.prefix = prefix
	}
}

// NewClient creates a Redis client for the given server.
func NewClient(address, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
}

// New creates a Store for kind records on an existing client.
func New[T any](client *backend.Client, kind string, opts ...Option) *Store[T] {
	o := storeOptions{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T]{
		client: client,
		kind:   kind,
		prefix: o.prefix,
		ttl:    o.ttl,
	}
}

func (s *Store[T]) key(key string) string {
	return s.prefix + s.kind + ":" + key
}

func (s *Store[T]) indexKey() string {
	return s.prefix + s.kind + ":index"
}

// GetOne loads the record stored under key.
func (s *Store[T]) GetOne(ctx context.Context, key string) (*T, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if stderrors.Is(err, backend.Nil) {
			return nil, errors.NewNotFoundError(s.kind, key)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	result := new(T)
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return result, nil
}

// Put stores entity under key and adds the key to the kind's index.
func (s *Store[T]) Put(ctx context.Context, key string, entity T) error {
	if key == "" {
		return errors.NewValidationError("key", "must not be empty")
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(key), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Delete removes the record stored under key.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.key(key))
	pipe.SRem(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	if del.Val() == 0 {
		return errors.NewNotFoundError(s.kind, key)
	}
	return nil
}

// Keys lists the keys of stored records of the store's kind.
func (s *Store[T]) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return keys, nil
}
