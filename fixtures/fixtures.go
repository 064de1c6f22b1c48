/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package fixtures defines the factories for the rating-system kinds in models.
package fixtures

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/rs/zerolog"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/models"
	"github.com/suparena/entityfactory/registry"
)

// Kind names
const (
	KindRatingSystem = "RatingSystem"
	KindPlayer       = "Player"
	KindMatch        = "Match"
)

func init() {
	registry.RegisterIndexMap[models.RatingSystem](map[string]string{
		"PK": "RATINGSYSTEM#{Id}",
		"SK": "RATINGSYSTEM#{Id}",
	})
	registry.RegisterIndexMap[models.Player](map[string]string{
		"PK":     "PLAYER#{Id}",
		"SK":     "PLAYER#{Id}",
		"GSI1PK": "RATINGSYSTEM#{RatingSystemId}",
		"GSI1SK": "PLAYER#{Id}",
	})
	registry.RegisterIndexMap[models.Match](map[string]string{
		"PK":     "MATCH#{Id}",
		"SK":     "MATCH#{Id}",
		"GSI1PK": "RATINGSYSTEM#{RatingSystemId}",
		"GSI1SK": "MATCH#{Id}",
	})
}

// Set holds one factory per kind. Factories in a set refer to each other
// through their associations.
type Set struct {
	RatingSystems *entityfactory.Factory[models.RatingSystem]
	Players       *entityfactory.Factory[models.Player]
	Matches       *entityfactory.Factory[models.Match]

	now func() time.Time
}

type setOptions struct {
	now     func() time.Time
	factory []entityfactory.Option
}

// Option configures a Set.
type Option func(*setOptions)

// WithClock fixes the time used for date-time defaults.
func WithClock(now func() time.Time) Option {
	return func(o *setOptions) {
		o.now = now
	}
}

// WithLogger passes a logger to every factory in the set.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *setOptions) {
		o.factory = append(o.factory, entityfactory.WithLogger(logger))
	}
}

// WithFactoryOptions passes options to every factory in the set.
func WithFactoryOptions(opts ...entityfactory.Option) Option {
	return func(o *setOptions) {
		o.factory = append(o.factory, opts...)
	}
}

// New creates the factory set.
func New(opts ...Option) *Set {
	o := setOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Set{now: o.now}
	s.RatingSystems = entityfactory.New[models.RatingSystem](ratingSystemDef{s}, o.factory...)
	s.Players = entityfactory.New[models.Player](playerDef{s}, o.factory...)
	s.Matches = entityfactory.New[models.Match](matchDef{s}, o.factory...)
	return s
}

// Catalog returns a catalog holding every factory of the set.
func (s *Set) Catalog() *entityfactory.Catalog {
	c := entityfactory.NewCatalog()
	// kinds are distinct, Register cannot fail
	_ = c.Register(s.RatingSystems, s.Players, s.Matches)
	return c
}

func (s *Set) timestamp() strfmt.DateTime {
	return strfmt.DateTime(s.now().UTC().Truncate(time.Millisecond))
}

type ratingSystemDef struct{ set *Set }

func (ratingSystemDef) Kind() string { return KindRatingSystem }

func (d ratingSystemDef) DefaultDictionary() (attributes.Map, error) {
	ts := d.set.timestamp()
	return attributes.Map{
		"Name":        "Oakville Table Tennis",
		"Description": "Club ladder rating system",
		"SiteURL":     "https://example.com/ratings",
		"CreatedAt":   ts,
		"UpdatedAt":   ts,
	}, nil
}

func (d ratingSystemDef) Associations() map[string]entityfactory.Association {
	return map[string]entityfactory.Association{
		"players":  entityfactory.HasMany(d.set.Players, 2, nil),
		"champion": entityfactory.HasOne(d.set.Players, attributes.Map{"Name": "Champion", "Rating": 2400}),
	}
}

type playerDef struct{ set *Set }

func (playerDef) Kind() string { return KindPlayer }

func (d playerDef) DefaultDictionary() (attributes.Map, error) {
	return attributes.Map{
		"Name":     "Player",
		"Email":    "player@example.com",
		"Rating":   1500,
		"JoinedAt": d.set.timestamp(),
	}, nil
}

func (d playerDef) Associations() map[string]entityfactory.Association {
	return map[string]entityfactory.Association{
		"ratingSystem": entityfactory.FindOrCreate(d.set.RatingSystems, "ID", nil),
	}
}

type matchDef struct{ set *Set }

func (matchDef) Kind() string { return KindMatch }

func (d matchDef) DefaultDictionary() (attributes.Map, error) {
	return attributes.Map{
		"Score":    "3-0",
		"PlayedAt": d.set.timestamp(),
	}, nil
}

func (d matchDef) Associations() map[string]entityfactory.Association {
	return map[string]entityfactory.Association{
		"winner":       entityfactory.HasOne(d.set.Players, attributes.Map{"Rating": 1800}),
		"loser":        entityfactory.HasOne(d.set.Players, attributes.Map{"Rating": 1400}),
		"ratingSystem": entityfactory.FindOrCreate(d.set.RatingSystems, "ID", nil),
	}
}
