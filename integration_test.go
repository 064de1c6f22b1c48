//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory_test

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/datastore/ddb"
	"github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/fixtures"
	"github.com/suparena/entityfactory/models"
)

func setupDynamoSession(t *testing.T) *entityfactory.Session {
	_ = godotenv.Load()

	tableName := os.Getenv("DDB_TEST_TABLE_NAME")
	if tableName == "" {
		t.Skip("DDB_TEST_TABLE_NAME not set, skipping integration test")
	}

	client, err := ddb.NewDynamoDBClient(context.Background(),
		os.Getenv("AWS_ACCESS_KEY_ID"),
		os.Getenv("AWS_SECRET_ACCESS_KEY"),
		os.Getenv("AWS_REGION"),
	)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	s := entityfactory.NewSession()
	if err := entityfactory.RegisterDataStore[models.RatingSystem](s, fixtures.KindRatingSystem,
		ddb.NewDynamodbDataStore[models.RatingSystem](client, tableName, fixtures.KindRatingSystem)); err != nil {
		t.Fatal(err)
	}
	if err := entityfactory.RegisterDataStore[models.Player](s, fixtures.KindPlayer,
		ddb.NewDynamodbDataStore[models.Player](client, tableName, fixtures.KindPlayer)); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestIntegrationCreateAndFetch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	s := setupDynamoSession(t)
	set := fixtures.New()

	rs, err := set.RatingSystems.Create(ctx, s, attributes.Map{"Name": "Integration ladder"})
	if err != nil {
		t.Fatalf("Failed to create rating system: %v", err)
	}

	players, err := entityfactory.AssociationMany[models.Player](ctx, set.RatingSystems, s, "players",
		attributes.Map{"RatingSystemID": rs.Key})
	if err != nil {
		t.Fatalf("Failed to resolve players: %v", err)
	}

	for _, p := range players {
		fetched, err := set.Players.Fetch(ctx, s, p.Key)
		if err != nil {
			t.Fatalf("Failed to fetch player %s: %v", p.Key, err)
		}
		if fetched.Record.RatingSystemID != rs.Key {
			t.Errorf("Expected rating system %s, got %s", rs.Key, fetched.Record.RatingSystemID)
		}
	}

	found, err := entityfactory.AssociationOne[models.RatingSystem](ctx, set.Players, s, "ratingSystem",
		attributes.Map{"ID": rs.Key})
	if err != nil {
		t.Fatalf("Failed to find rating system: %v", err)
	}
	if *found.Record.Name != "Integration ladder" {
		t.Errorf("Unexpected rating system name %q", *found.Record.Name)
	}

	// Cleanup
	rsStore, _ := entityfactory.GetDataStore[models.RatingSystem](s, fixtures.KindRatingSystem)
	if err := rsStore.Delete(ctx, rs.Key); err != nil {
		t.Errorf("Failed to delete rating system: %v", err)
	}
	playerStore, _ := entityfactory.GetDataStore[models.Player](s, fixtures.KindPlayer)
	for _, p := range players {
		if err := playerStore.Delete(ctx, p.Key); err != nil {
			t.Errorf("Failed to delete player: %v", err)
		}
	}

	if _, err := set.RatingSystems.Fetch(ctx, s, rs.Key); !errors.IsNotFound(err) {
		t.Errorf("Expected not found error, got: %v", err)
	}
}
