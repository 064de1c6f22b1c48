/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

import (
	"context"
	"sort"
	"sync"

	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/errors"
)

// Seeder is the untyped face of a Factory. Callers holding only a kind
// name and a loose attribute map (a fixture file, a request body) go through it.
type Seeder interface {
	Kind() string
	Seed(ctx context.Context, s *Session, attrs attributes.Map) (string, error)
	AssociationWithName(ctx context.Context, s *Session, name string, attrs attributes.Map) (any, error)
}

var _ Seeder = (*Factory[struct{}])(nil)

// Catalog is a thread-safe set of Seeders keyed by kind.
type Catalog struct {
	mu      sync.RWMutex
	seeders map[string]Seeder
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		seeders: make(map[string]Seeder),
	}
}

// Register adds seeders under their kind names. If any kind is already
// registered, or repeated in the call, nothing is added.
func (c *Catalog) Register(seeders ...Seeder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(seeders))
	for _, sd := range seeders {
		if _, exists := c.seeders[sd.Kind()]; exists || seen[sd.Kind()] {
			return errors.NewAlreadyExistsError("factory", sd.Kind())
		}
		seen[sd.Kind()] = true
	}
	for _, sd := range seeders {
		c.seeders[sd.Kind()] = sd
	}
	return nil
}

// Get returns the seeder registered for kind.
func (c *Catalog) Get(kind string) (Seeder, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sd, exists := c.seeders[kind]
	if !exists {
		return nil, errors.NewNotFoundError("factory", kind)
	}
	return sd, nil
}

// Kinds returns the registered kind names in sorted order.
func (c *Catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	kinds := make([]string, 0, len(c.seeders))
	for k := range c.seeders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Seed creates one entity of kind in s and returns its key.
func (c *Catalog) Seed(ctx context.Context, s *Session, kind string, attrs attributes.Map) (string, error) {
	sd, err := c.Get(kind)
	if err != nil {
		return "", err
	}
	return sd.Seed(ctx, s, attrs)
}
