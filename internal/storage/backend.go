package storage

import (
	"context"
	"fmt"

	"github.com/Varun5711/contactkeeper/internal/config"
	"github.com/Varun5711/contactkeeper/internal/database"
	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/mongodb"
)

// Backend bundles the credential and contact stores chosen by STORAGE_BACKEND.
type Backend struct {
	Users    UserStore
	Contacts ContactStore
	Health   Pinger
	closeFn  func()
}

func (b *Backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

func NewMemoryBackend() *Backend {
	mem := NewMemoryStorage()
	return &Backend{Users: mem, Contacts: mem, Health: mem}
}

func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Warn("Using in-memory storage; data is lost on restart")
		return NewMemoryBackend(), nil

	case config.BackendPostgres:
		dbManager, err := database.NewDBManager(ctx, database.Config{
			PrimaryDSN:      cfg.Database.PrimaryDSN,
			ReplicaDSNs:     cfg.Database.ReplicaDSNs,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if cfg.Database.Migrate {
			if err := dbManager.Migrate(ctx); err != nil {
				dbManager.Close()
				return nil, err
			}
			log.Info("Database migrations applied")
		}

		log.Info("Connected to Postgres (%d replicas)", len(cfg.Database.ReplicaDSNs))
		return &Backend{
			Users:    NewUserStorage(dbManager),
			Contacts: NewContactStorage(dbManager),
			Health:   dbManager,
			closeFn:  dbManager.Close,
		}, nil

	case config.BackendMongo:
		client, err := mongodb.NewMongoClient(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}

		store := NewMongoStorage(client.Database())
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Close(context.Background())
			return nil, err
		}

		log.Info("Connected to MongoDB database %s", cfg.Mongo.Database)
		return &Backend{
			Users:    store,
			Contacts: store,
			Health:   client,
			closeFn: func() {
				if err := client.Close(context.Background()); err != nil {
					log.Warn("Failed to disconnect from MongoDB: %v", err)
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
