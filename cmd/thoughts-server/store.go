package main

import (
	"context"
	"fmt"
	"log/slog"

	"thoughts-api/internal/config"
	"thoughts-api/internal/domain"
	mongorepo "thoughts-api/internal/repository/mongo"
	"thoughts-api/internal/repository/postgres"
)

// openStore connects the configured driver, bootstraps its schema and
// returns the repository with a func releasing the connection
func openStore(ctx context.Context, cfg *config.Config) (domain.ThoughtRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongorepo.Connect(ctx, cfg.MongoURL, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				slog.Error("failed to disconnect from mongo", slog.String("error", err.Error()))
			}
		}

		repo := mongorepo.NewThoughtRepository(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		slog.Info("connected to mongodb", slog.String("database", cfg.MongoDatabase))
		return repo, closeFn, nil

	case config.DriverPostgres:
		db, err := config.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close database", slog.String("error", err.Error()))
			}
		}

		repo := postgres.NewThoughtRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		slog.Info("connected to postgresql")
		return repo, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
