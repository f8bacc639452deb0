package main

import (
	"context"

	"github.com/vertex-lab/linkrank/pkg/models"
	"github.com/vertex-lab/linkrank/pkg/store/memstore"
	"github.com/vertex-lab/linkrank/pkg/store/redistore"
	"github.com/vertex-lab/linkrank/pkg/store/sqlstore"
	"github.com/vertex-lab/linkrank/pkg/utils/redisutils"
)

// openStore() returns the ResultStore selected by the configuration.
func openStore(ctx context.Context, config Config) (models.ResultStore, error) {
	switch config.Store {
	case StoreMemory:
		return memstore.NewResultStore(), nil

	case StoreRedis:
		cl := redisutils.SetupClient(config.RedisAddr)
		store, err := redistore.NewResultStore(ctx, cl)
		if err != nil {
			cl.Close()
			return nil, err
		}
		return store, nil

	case StoreSQLite:
		store, err := sqlstore.NewResultStore(ctx, config.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, ErrInvalidStore
	}
}
