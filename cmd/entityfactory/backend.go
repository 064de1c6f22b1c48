package main

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/config"
	"github.com/suparena/entityfactory/datastore"
	"github.com/suparena/entityfactory/datastore/ddb"
	"github.com/suparena/entityfactory/datastore/memory"
	"github.com/suparena/entityfactory/datastore/redisstore"
	"github.com/suparena/entityfactory/fixtures"
	"github.com/suparena/entityfactory/models"
)

// opener returns the datastore for one kind on the configured backend.
type opener struct {
	cfg   config.Config
	redis *backend.Client
	ddb   ddb.API
}

func openFor[T any](o *opener, kind string) datastore.DataStore[T] {
	switch o.cfg.Backend {
	case config.BackendRedis:
		return redisstore.New[T](o.redis, kind, redisstore.WithPrefix(o.cfg.Redis.Prefix))
	case config.BackendDynamoDB:
		return ddb.NewDynamodbDataStore[T](o.ddb, o.cfg.DynamoDB.Table, kind)
	default:
		return memory.New[T]()
	}
}

func register[T any](s *entityfactory.Session, o *opener, kind string) error {
	return entityfactory.RegisterDataStore[T](s, kind, openFor[T](o, kind))
}

// openSession builds a session with a datastore per fixture kind.
func openSession(ctx context.Context, cfg config.Config) (*entityfactory.Session, func(), error) {
	o := &opener{cfg: cfg}
	closeFn := func() {}

	switch cfg.Backend {
	case config.BackendRedis:
		o.redis = redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := o.redis.Ping(ctx).Err(); err != nil {
			_ = o.redis.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		closeFn = func() { _ = o.redis.Close() }
	case config.BackendDynamoDB:
		client, err := ddb.NewDynamoDBClient(ctx, cfg.DynamoDB.AccessKey, cfg.DynamoDB.SecretKey, cfg.DynamoDB.Region)
		if err != nil {
			return nil, nil, err
		}
		o.ddb = client
	}

	s := entityfactory.NewSession()
	for _, err := range []error{
		register[models.RatingSystem](s, o, fixtures.KindRatingSystem),
		register[models.Player](s, o, fixtures.KindPlayer),
		register[models.Match](s, o, fixtures.KindMatch),
	} {
		if err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	return s, closeFn, nil
}
