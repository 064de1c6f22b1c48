/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

import (
	"context"
	"fmt"
	"reflect"

	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/errors"
)

// Association is a named relation from one kind to another, resolved on demand.
type Association interface {
	// Defaults are the attributes applied to the related entity before the caller's.
	Defaults() attributes.Map
	// Resolve constructs or fetches the related entity (or entities) in s.
	// attrs already has Defaults merged under the caller's values.
	Resolve(ctx context.Context, s *Session, attrs attributes.Map) (any, error)
}

type hasOne[R any] struct {
	related  *Factory[R]
	defaults attributes.Map
}

// HasOne declares an association that creates one related entity per resolution.
// It resolves to *Entity[R].
func HasOne[R any](related *Factory[R], defaults attributes.Map) Association {
	return &hasOne[R]{related: related, defaults: defaults}
}

func (a *hasOne[R]) Defaults() attributes.Map { return attributes.Clone(a.defaults) }

func (a *hasOne[R]) Resolve(ctx context.Context, s *Session, attrs attributes.Map) (any, error) {
	return a.related.Create(ctx, s, attrs)
}

type hasMany[R any] struct {
	related  *Factory[R]
	count    int
	defaults attributes.Map
}

// HasMany declares an association that creates count related entities per
// resolution, all from the same attributes. It resolves to []*Entity[R].
func HasMany[R any](related *Factory[R], count int, defaults attributes.Map) Association {
	return &hasMany[R]{related: related, count: count, defaults: defaults}
}

func (a *hasMany[R]) Defaults() attributes.Map { return attributes.Clone(a.defaults) }

func (a *hasMany[R]) Resolve(ctx context.Context, s *Session, attrs attributes.Map) (any, error) {
	out := make([]*Entity[R], 0, max(a.count, 0))
	for i := 0; i < a.count; i++ {
		entity, err := a.related.Create(ctx, s, attrs)
		if err != nil {
			return nil, fmt.Errorf("entity %d of %d: %w", i+1, a.count, err)
		}
		out = append(out, entity)
	}
	return out, nil
}

type findOrCreate[R any] struct {
	related  *Factory[R]
	keyAttr  string
	defaults attributes.Map
}

// FindOrCreate declares an association that looks up an existing related
// record by the key found under keyAttr, creating it under that key when it
// does not exist. Without a key in the attributes it always creates.
// keyAttr is stripped before the related record is built. A keyAttr value
// that is not a string is a ValidationError.
// It resolves to *Entity[R].
func FindOrCreate[R any](related *Factory[R], keyAttr string, defaults attributes.Map) Association {
	return &findOrCreate[R]{related: related, keyAttr: keyAttr, defaults: defaults}
}

func (a *findOrCreate[R]) Defaults() attributes.Map { return attributes.Clone(a.defaults) }

func (a *findOrCreate[R]) Resolve(ctx context.Context, s *Session, attrs attributes.Map) (any, error) {
	raw, present := attrs[a.keyAttr]
	if present && raw != nil {
		if _, ok := raw.(string); !ok {
			return nil, errors.NewValidationError(a.keyAttr, fmt.Sprintf("must be a string key, got %T", raw))
		}
	}
	key, ok := attrs.String(a.keyAttr)
	attrs = attrs.Without(a.keyAttr)
	if !ok {
		return a.related.Create(ctx, s, attrs)
	}

	entity, err := a.related.Fetch(ctx, s, key)
	if err == nil {
		return entity, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}
	return a.related.create(ctx, s, attrs, key)
}

// AssociationOne resolves a single-entity association and asserts its type.
func AssociationOne[R any, T any](ctx context.Context, f *Factory[T], s *Session, name string, attrs attributes.Map) (*Entity[R], error) {
	resolved, err := f.AssociationWithName(ctx, s, name, attrs)
	if err != nil {
		return nil, err
	}
	entity, ok := resolved.(*Entity[R])
	if !ok {
		return nil, fmt.Errorf("%s association %q resolved to %T", f.Kind(), name, resolved)
	}
	return entity, nil
}

// AssociationMany resolves a collection association and asserts its type.
func AssociationMany[R any, T any](ctx context.Context, f *Factory[T], s *Session, name string, attrs attributes.Map) ([]*Entity[R], error) {
	resolved, err := f.AssociationWithName(ctx, s, name, attrs)
	if err != nil {
		return nil, err
	}
	entities, ok := resolved.([]*Entity[R])
	if !ok {
		return nil, fmt.Errorf("%s association %q resolved to %T", f.Kind(), name, resolved)
	}
	return entities, nil
}

// Ref identifies a stored entity.
type Ref struct {
	Kind string
	Key  string
}

type referenced interface {
	Ref() Ref
}

// Refs lists the entities of an association result, which is either a
// single entity or a slice of entities.
func Refs(resolved any) []Ref {
	if r, ok := resolved.(referenced); ok {
		return []Ref{r.Ref()}
	}
	v := reflect.ValueOf(resolved)
	if v.Kind() != reflect.Slice {
		return nil
	}
	refs := make([]Ref, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if r, ok := v.Index(i).Interface().(referenced); ok {
			refs = append(refs, r.Ref())
		}
	}
	return refs
}

func refKeys(refs []Ref) []string {
	keys := make([]string, len(refs))
	for i, r := range refs {
		keys[i] = r.Key
	}
	return keys
}
