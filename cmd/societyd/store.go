package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/infrastructure/config"
	mongostore "github.com/societyhub/apartment-system/internal/infrastructure/db/mongo"
	"github.com/societyhub/apartment-system/internal/infrastructure/db/sqldb"
	"github.com/societyhub/apartment-system/internal/infrastructure/http/handlers"
)

// store is one opened storage backend.
type store struct {
	repos ports.Repositories
	ping  handlers.Pinger
	// migrate creates indexes or tables; safe to run repeatedly.
	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
		return &store{
			repos:   mongostore.NewRepositories(db),
			ping:    handlers.MongoPinger(db),
			migrate: func(ctx context.Context) error { return mongostore.EnsureIndexes(ctx, db) },
			close:   client.Disconnect,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		dsn := cfg.SQL.PostgresDSN
		if cfg.Store.Driver == config.DriverSQLite {
			dsn = cfg.SQL.SQLitePath
		}
		db, err := sqldb.Open(ctx, sqldb.Config{Driver: cfg.Store.Driver, DSN: dsn, Debug: cfg.LogLevel == "debug"})
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Msg("connected to sql store")
		return &store{
			repos:   sqldb.NewRepositories(db),
			ping:    func(ctx context.Context) error { return sqldb.Ping(ctx, db) },
			migrate: func(ctx context.Context) error { return sqldb.Migrate(ctx, db) },
			close:   func(context.Context) error { return sqldb.Close(db) },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
