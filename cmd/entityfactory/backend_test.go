package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/attributes"
	"github.com/suparena/entityfactory/config"
	"github.com/suparena/entityfactory/fixtures"
	"github.com/suparena/entityfactory/models"
)

func TestOpenSessionMemory(t *testing.T) {
	ctx := context.Background()
	s, closeFn, err := openSession(ctx, config.Default())
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, []string{fixtures.KindPlayer}, entityfactory.ListDataStores[models.Player](s))

	p, err := fixtures.New().Players.Create(ctx, s, attributes.Map{"Name": "Mem"})
	require.NoError(t, err)
	assert.True(t, p.Persisted())
}

func TestOpenSessionRedis(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := config.Default()
	cfg.Backend = config.BackendRedis
	cfg.Redis.Addr = mr.Addr()

	s, closeFn, err := openSession(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	set := fixtures.New()
	p, err := set.Players.Create(ctx, s, attributes.Map{"Name": "Redis"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("entityfactory:Player:"+p.Key))

	fetched, err := set.Players.Fetch(ctx, s, p.Key)
	require.NoError(t, err)
	assert.Equal(t, "Redis", fetched.Record.Name)
	assert.Equal(t, p.Record.JoinedAt.String(), fetched.Record.JoinedAt.String())
}

func TestOpenSessionRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Backend = config.BackendRedis
	cfg.Redis.Addr = addr

	_, _, err = openSession(context.Background(), cfg)
	assert.Error(t, err)
}
