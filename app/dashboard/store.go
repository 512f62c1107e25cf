package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/session"
	"github.com/dmitrymomot/dashboard/integration/database/dynamodb"
	"github.com/dmitrymomot/dashboard/integration/database/mongo"
	"github.com/dmitrymomot/dashboard/integration/database/pg"
	"github.com/dmitrymomot/dashboard/integration/database/redis"
)

const (
	StoreMemory   = "memory"
	StoreDynamoDB = "dynamodb"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type closer func(context.Context) error

// openStore connects the backend named by cfg.Session.Store.
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (session.Store, closer, error) {
	log = log.With(logger.Component("store"), logger.Key("backend", cfg.Session.Store))

	switch cfg.Session.Store {
	case "", StoreMemory:
		return session.NewMemoryStore(), nil, nil

	case StoreDynamoDB:
		client, err := dynamodb.Connect(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		store := dynamodb.NewStore(client, cfg.DynamoDB.TableName, dynamodb.WithLogger(log))
		if err := store.Healthcheck(ctx); err != nil {
			return nil, nil, err
		}
		log.InfoContext(ctx, "session table found", logger.Key("table", cfg.DynamoDB.TableName))
		return store, nil, nil

	case StoreRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store := redis.NewStore(client, redis.WithKeyPrefix(cfg.Redis.KeyPrefix))
		return store, func(context.Context) error { return client.Close() }, nil

	case StorePostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg.NewStore(pool), func(context.Context) error { pool.Close(); return nil }, nil

	case StoreMongo:
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		store := mongo.NewStore(db.Collection(cfg.Mongo.Collection))
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = db.Client().Disconnect(ctx)
			return nil, nil, err
		}
		return store, db.Client().Disconnect, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Session.Store)
	}
}
