/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"

	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/datastore"
	"github.com/suparena/entityfactory/errors"
)

// Definition describes one entity kind: its name, the attributes a new
// entity starts from and the associations it can resolve.
type Definition interface {
	// Kind is the entity-kind name, also used to find the kind's datastore in a Session.
	Kind() string
	// DefaultDictionary returns the baseline attributes for a new entity.
	DefaultDictionary() (attributes.Map, error)
	// Associations returns the named associations the kind declares. It may return nil.
	Associations() map[string]Association
}

// Unspecialized is a Definition carrying only a kind name.
// Its DefaultDictionary reports a NotImplementedError, so a definition that
// embeds it without overriding DefaultDictionary cannot build entities.
type Unspecialized struct {
	Name string
}

func (u Unspecialized) Kind() string { return u.Name }

func (u Unspecialized) DefaultDictionary() (attributes.Map, error) {
	return nil, errors.NewNotImplementedError(u.Name, "DefaultDictionary")
}

func (u Unspecialized) Associations() map[string]Association { return nil }

// KeySetter is implemented by records that carry their own key field.
// Create calls it with the generated key before the record is stored.
type KeySetter interface {
	SetEntityKey(key string)
}

type validator interface {
	Validate(formats strfmt.Registry) error
}

// Entity is a constructed record together with how it was built.
type Entity[T any] struct {
	// Key is the record key in the session; empty until the entity is created.
	Key string
	// Kind is the entity-kind name of the factory that produced the entity.
	Kind string
	// Attributes is the merged map the record was populated from.
	// It is nil for entities fetched from a datastore.
	Attributes attributes.Map
	// Record is the typed record.
	Record T
}

// Persisted reports whether the entity has been stored in a session.
func (e *Entity[T]) Persisted() bool {
	return e.Key != ""
}

// Ref returns the kind and key identifying the entity.
func (e *Entity[T]) Ref() Ref {
	return Ref{Kind: e.Kind, Key: e.Key}
}

type options struct {
	logger  zerolog.Logger
	keyFunc func() string
	hooks   []mapstructure.DecodeHookFunc
	formats strfmt.Registry
}

// Option configures a Factory.
type Option func(*options)

// WithLogger sets the logger used for create and association events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKeyFunc replaces the key generator used by Create. The default is uuid.NewString.
func WithKeyFunc(fn func() string) Option {
	return func(o *options) {
		o.keyFunc = fn
	}
}

// WithDecodeHook adds a mapstructure hook applied when converting attributes into records.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hook)
	}
}

// WithFormats sets the strfmt registry passed to records that validate themselves.
func WithFormats(formats strfmt.Registry) Option {
	return func(o *options) {
		o.formats = formats
	}
}

// Factory builds and creates entities of record type T for one Definition.
// A Factory holds no session and is safe for concurrent use.
type Factory[T any] struct {
	def  Definition
	opts options
}

// New creates a Factory producing T records for def.
func New[T any](def Definition, opts ...Option) *Factory[T] {
	o := options{
		logger:  zerolog.Nop(),
		keyFunc: uuid.NewString,
		formats: strfmt.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Factory[T]{def: def, opts: o}
}

// Kind returns the entity-kind name.
func (f *Factory[T]) Kind() string {
	return f.def.Kind()
}

// DefaultDictionary returns a copy of the kind's default attributes.
func (f *Factory[T]) DefaultDictionary() (attributes.Map, error) {
	defaults, err := f.def.DefaultDictionary()
	if err != nil {
		return nil, err
	}
	return attributes.Clone(defaults), nil
}

// Build constructs an in-memory entity from the defaults merged with attrs.
// attrs wins on key collisions; nil or empty attrs builds the defaults as-is.
// Build never touches a session.
func (f *Factory[T]) Build(attrs attributes.Map) (*Entity[T], error) {
	defaults, err := f.DefaultDictionary()
	if err != nil {
		return nil, err
	}
	merged := attributes.Merge(defaults, attrs)

	var record T
	if err := attributes.Decode(merged, &record, f.opts.hooks...); err != nil {
		return nil, fmt.Errorf("build %s: %w", f.Kind(), err)
	}
	if v, ok := any(&record).(validator); ok {
		if err := v.Validate(f.opts.formats); err != nil {
			return nil, fmt.Errorf("build %s: %w", f.Kind(), errors.NewValidationError("", err.Error()))
		}
	}

	return &Entity[T]{
		Kind:       f.Kind(),
		Attributes: merged,
		Record:     record,
	}, nil
}

// Create builds an entity like Build and stores it in the session under a
// freshly generated key. Every call stores exactly one new record.
func (f *Factory[T]) Create(ctx context.Context, s *Session, attrs attributes.Map) (*Entity[T], error) {
	return f.create(ctx, s, attrs, "")
}

func (f *Factory[T]) create(ctx context.Context, s *Session, attrs attributes.Map, key string) (*Entity[T], error) {
	ds, err := f.dataStore(s, "create")
	if err != nil {
		return nil, err
	}

	entity, err := f.Build(attrs)
	if err != nil {
		return nil, err
	}

	if key == "" {
		key = f.opts.keyFunc()
	}
	if ks, ok := any(&entity.Record).(KeySetter); ok {
		ks.SetEntityKey(key)
	}

	if err := ds.Put(ctx, key, entity.Record); err != nil {
		return nil, errors.NewPersistenceError(f.Kind(), "create", err)
	}
	entity.Key = key

	f.opts.logger.Debug().
		Str("kind", f.Kind()).
		Str("key", key).
		Strs("attributes", attributes.Keys(entity.Attributes)).
		Msg("entity created")
	return entity, nil
}

// Fetch loads an existing entity by key from the session.
func (f *Factory[T]) Fetch(ctx context.Context, s *Session, key string) (*Entity[T], error) {
	ds, err := f.dataStore(s, "fetch")
	if err != nil {
		return nil, err
	}
	record, err := ds.GetOne(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError(f.Kind(), key)
		}
		return nil, errors.NewPersistenceError(f.Kind(), "fetch", err)
	}
	return &Entity[T]{Key: key, Kind: f.Kind(), Record: *record}, nil
}

func (f *Factory[T]) dataStore(s *Session, op string) (datastore.DataStore[T], error) {
	if s == nil {
		return nil, errors.NewPersistenceError(f.Kind(), op, errors.ErrNoSession)
	}
	ds, err := GetDataStore[T](s, f.Kind())
	if err != nil {
		return nil, errors.NewPersistenceError(f.Kind(), op, err)
	}
	return ds, nil
}

// AssociationWithName resolves the named association in the session.
// The association's defaults are merged under attrs before the related
// entity is constructed or fetched. Unknown names fail with an
// UnknownAssociationError.
func (f *Factory[T]) AssociationWithName(ctx context.Context, s *Session, name string, attrs attributes.Map) (any, error) {
	assoc, ok := f.def.Associations()[name]
	if !ok {
		return nil, errors.NewUnknownAssociationError(f.Kind(), name)
	}

	resolved, err := assoc.Resolve(ctx, s, attributes.Merge(assoc.Defaults(), attrs))
	if err != nil {
		return nil, fmt.Errorf("%s association %q: %w", f.Kind(), name, err)
	}

	f.opts.logger.Debug().
		Str("kind", f.Kind()).
		Str("association", name).
		Strs("keys", refKeys(Refs(resolved))).
		Msg("association resolved")
	return resolved, nil
}

// Seed creates an entity and returns its key. It lets a Catalog drive the
// factory without knowing T.
func (f *Factory[T]) Seed(ctx context.Context, s *Session, attrs attributes.Map) (string, error) {
	entity, err := f.Create(ctx, s, attrs)
	if err != nil {
		return "", err
	}
	return entity.Key, nil
}
