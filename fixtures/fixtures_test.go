/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fixtures_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/datastore/memory"
	"github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/fixtures"
	"github.com/suparena/entityfactory/models"
	"github.com/suparena/entityfactory/registry"
)

var clock = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func memorySession(t *testing.T) (*entityfactory.Session, *memory.DataStore[models.Player]) {
	t.Helper()
	s := entityfactory.NewSession()
	players := memory.New[models.Player]()
	require.NoError(t, entityfactory.RegisterDataStore[models.RatingSystem](s, fixtures.KindRatingSystem, memory.New[models.RatingSystem]()))
	require.NoError(t, entityfactory.RegisterDataStore[models.Player](s, fixtures.KindPlayer, players))
	require.NoError(t, entityfactory.RegisterDataStore[models.Match](s, fixtures.KindMatch, memory.New[models.Match]()))
	return s, players
}

func newSet() *fixtures.Set {
	return fixtures.New(fixtures.WithClock(func() time.Time { return clock }))
}

func TestRatingSystemDefaults(t *testing.T) {
	set := newSet()

	rs, err := set.RatingSystems.Build(nil)
	require.NoError(t, err)

	require.NotNil(t, rs.Record.Name)
	assert.Equal(t, "Oakville Table Tennis", *rs.Record.Name)
	require.NotNil(t, rs.Record.CreatedAt)
	assert.Equal(t, clock, time.Time(*rs.Record.CreatedAt))
	assert.Nil(t, rs.Record.ID)
}

func TestRatingSystemValidation(t *testing.T) {
	set := newSet()

	_, err := set.RatingSystems.Build(attributes.Map{"Name": ""})
	assert.True(t, errors.IsValidationError(err))

	_, err = set.RatingSystems.Build(attributes.Map{"SiteURL": "::not a uri"})
	assert.True(t, errors.IsValidationError(err))
}

func TestPlayerBuildFromStrings(t *testing.T) {
	set := newSet()

	p, err := set.Players.Build(attributes.Map{
		"Name":     "Ana",
		"Rating":   1720,
		"JoinedAt": "2024-01-15T08:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", p.Record.Name)
	assert.Equal(t, 1720, p.Record.Rating)
	assert.Equal(t, "player@example.com", p.Record.Email.String())
	assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), time.Time(p.Record.JoinedAt))
}

func TestPlayerValidation(t *testing.T) {
	set := newSet()

	_, err := set.Players.Build(attributes.Map{"Email": "not-an-email"})
	assert.True(t, errors.IsValidationError(err))

	_, err = set.Players.Build(attributes.Map{"Rating": -1})
	assert.True(t, errors.IsValidationError(err))
}

func TestCreatePlayerWithRatingSystem(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	session, players := memorySession(t)

	rs, err := set.RatingSystems.Create(ctx, session, nil)
	require.NoError(t, err)
	require.NotNil(t, rs.Record.ID)
	assert.Equal(t, rs.Key, *rs.Record.ID)

	p, err := set.Players.Create(ctx, session, attributes.Map{"RatingSystemID": rs.Key})
	require.NoError(t, err)
	assert.Equal(t, 1, players.Count())

	// The player's rating system resolves to the existing record
	found, err := entityfactory.AssociationOne[models.RatingSystem](ctx, set.Players, session, "ratingSystem", attributes.Map{"ID": p.Record.RatingSystemID})
	require.NoError(t, err)
	assert.Equal(t, rs.Key, found.Key)
}

func TestRatingSystemAssociations(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	session, players := memorySession(t)

	roster, err := entityfactory.AssociationMany[models.Player](ctx, set.RatingSystems, session, "players", attributes.Map{"RatingSystemID": "rs-1"})
	require.NoError(t, err)
	require.Len(t, roster, 2)
	for _, p := range roster {
		assert.Equal(t, "rs-1", p.Record.RatingSystemID)
	}

	champ, err := entityfactory.AssociationOne[models.Player](ctx, set.RatingSystems, session, "champion", nil)
	require.NoError(t, err)
	assert.Equal(t, "Champion", champ.Record.Name)
	assert.Equal(t, 2400, champ.Record.Rating)
	assert.Equal(t, 3, players.Count())

	_, err = set.RatingSystems.AssociationWithName(ctx, session, "missing", nil)
	assert.True(t, errors.IsUnknownAssociation(err))
}

func TestMatchAssociations(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	session, _ := memorySession(t)

	winner, err := entityfactory.AssociationOne[models.Player](ctx, set.Matches, session, "winner", nil)
	require.NoError(t, err)
	loser, err := entityfactory.AssociationOne[models.Player](ctx, set.Matches, session, "loser", nil)
	require.NoError(t, err)
	assert.Greater(t, winner.Record.Rating, loser.Record.Rating)

	m, err := set.Matches.Create(ctx, session, attributes.Map{"WinnerID": winner.Key, "LoserID": loser.Key})
	require.NoError(t, err)
	assert.Equal(t, "3-0", m.Record.Score)

	_, err = set.Matches.Build(attributes.Map{"WinnerID": "same", "LoserID": "same"})
	assert.True(t, errors.IsValidationError(err))
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	session, players := memorySession(t)
	catalog := set.Catalog()

	assert.Equal(t, []string{"Match", "Player", "RatingSystem"}, catalog.Kinds())

	key, err := catalog.Seed(ctx, session, fixtures.KindPlayer, attributes.Map{"Name": "Seeded"})
	require.NoError(t, err)

	stored, err := players.GetOne(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Seeded", stored.Name)

	_, err = catalog.Seed(ctx, session, "Unknown", nil)
	assert.True(t, errors.IsNotFound(err))

	assert.True(t, errors.IsAlreadyExists(catalog.Register(set.Players)))
}

func TestIndexMapsRegistered(t *testing.T) {
	for _, ok := range []bool{
		hasIndexMap[models.RatingSystem](),
		hasIndexMap[models.Player](),
		hasIndexMap[models.Match](),
	} {
		assert.True(t, ok)
	}
}

func hasIndexMap[T any]() bool {
	_, ok := registry.GetIndexMap[T]()
	return ok
}
