/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package seed runs fixture plans: YAML lists of entities to create through
// a Catalog, with optional associations resolved for each created entity.
package seed

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/errors"
)

// ParentKeyRef in an association attribute is replaced with the key of the
// entity the association is resolved for.
const ParentKeyRef = "$parent"

// Plan is a list of entries created in order.
type Plan struct {
	Entities []Entry `yaml:"entities"`
}

// Entry creates Count entities of Kind. A zero Count creates one.
type Entry struct {
	Kind         string                    `yaml:"kind"`
	Count        int                       `yaml:"count"`
	Attributes   map[string]any            `yaml:"attributes"`
	Associations map[string]map[string]any `yaml:"associations"`
}

// Result describes one stored record.
type Result struct {
	Kind string
	Key  string
	// Parent is the key of the entity an association was resolved for.
	Parent string
	// Association is the association name, empty for plan entries.
	Association string
}

// Parse decodes a plan from YAML.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.NewValidationError("plan", err.Error())
	}
	for i, e := range p.Entities {
		if e.Kind == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("entities[%d].kind", i), "required")
		}
		if e.Count < 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("entities[%d].count", i), "must not be negative")
		}
	}
	return &p, nil
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(data)
}

// Runner executes plans against a catalog and session.
type Runner struct {
	catalog *entityfactory.Catalog
	session *entityfactory.Session
	logger  zerolog.Logger
}

// NewRunner creates a Runner.
func NewRunner(catalog *entityfactory.Catalog, session *entityfactory.Session, logger zerolog.Logger) *Runner {
	return &Runner{catalog: catalog, session: session, logger: logger}
}

// Run creates every entry of the plan. It stops at the first error and
// returns the results stored up to that point.
func (r *Runner) Run(ctx context.Context, p *Plan) ([]Result, error) {
	var results []Result
	for i, e := range p.Entities {
		seeder, err := r.catalog.Get(e.Kind)
		if err != nil {
			return results, fmt.Errorf("entities[%d]: %w", i, err)
		}

		count := e.Count
		if count == 0 {
			count = 1
		}
		for n := 0; n < count; n++ {
			key, err := seeder.Seed(ctx, r.session, attributes.Map(e.Attributes))
			if err != nil {
				return results, fmt.Errorf("entities[%d] %s #%d: %w", i, e.Kind, n+1, err)
			}
			results = append(results, Result{Kind: e.Kind, Key: key})
			r.logger.Info().Str("kind", e.Kind).Str("key", key).Msg("seeded")

			assocResults, err := r.associate(ctx, seeder, key, e.Associations)
			results = append(results, assocResults...)
			if err != nil {
				return results, fmt.Errorf("entities[%d] %s #%d: %w", i, e.Kind, n+1, err)
			}
		}
	}
	return results, nil
}

func (r *Runner) associate(ctx context.Context, seeder entityfactory.Seeder, parent string, assocs map[string]map[string]any) ([]Result, error) {
	names := make([]string, 0, len(assocs))
	for name := range assocs {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []Result
	for _, name := range names {
		attrs := withParentKey(attributes.Map(assocs[name]), parent)
		resolved, err := seeder.AssociationWithName(ctx, r.session, name, attrs)
		if err != nil {
			return results, err
		}
		for _, ref := range entityfactory.Refs(resolved) {
			results = append(results, Result{
				Kind:        ref.Kind,
				Key:         ref.Key,
				Parent:      parent,
				Association: name,
			})
			r.logger.Info().
				Str("kind", seeder.Kind()).
				Str("parent", parent).
				Str("association", name).
				Str("key", ref.Key).
				Msg("seeded association")
		}
	}
	return results, nil
}

func withParentKey(attrs attributes.Map, parent string) attributes.Map {
	out := attributes.Clone(attrs)
	for k, v := range out {
		if s, ok := v.(string); ok && s == ParentKeyRef {
			out[k] = parent
		}
	}
	return out
}
