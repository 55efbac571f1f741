package author

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"bookcatalog/internal/platform/dbconn"
	"bookcatalog/internal/platform/mongodb"
	"bookcatalog/internal/platform/postgres"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Store is the lifecycle of the connection backing a Repository.
type Store interface {
	Start(ctx context.Context)
	Close(ctx context.Context) error
	Connected() bool
	Ready() <-chan struct{}
}

type StoreConfig struct {
	Kind       string
	URL        string
	Database   string
	Timeout    time.Duration
	RetryDelay time.Duration
}

// OpenStore builds the repository for cfg.Kind together with the connection
// manager it reads through. Nothing is dialed until Store.Start is called.
func OpenStore(cfg StoreConfig, log *logrus.Logger, obs dbconn.Observer) (Repository, Store, error) {
	switch cfg.Kind {
	case StoreMongo:
		manager := dbconn.New(dbconn.Options[*mongo.Client]{
			Name:       StoreMongo,
			Target:     cfg.URL,
			Dial:       mongodb.Dial(cfg.URL, cfg.Timeout),
			Close:      mongodb.Disconnect,
			RetryDelay: cfg.RetryDelay,
			Logger:     log,
			Observer:   obs,
		})
		return NewMongoRepo(manager, cfg.Database, cfg.Timeout), manager, nil
	case StorePostgres:
		manager := dbconn.New(dbconn.Options[*pgxpool.Pool]{
			Name:       StorePostgres,
			Target:     cfg.URL,
			Dial:       postgres.Dial(cfg.URL, cfg.Timeout),
			Close:      postgres.Close,
			RetryDelay: cfg.RetryDelay,
			Logger:     log,
			Observer:   obs,
		})
		return NewPostgresRepo(manager, cfg.Timeout), manager, nil
	default:
		return nil, nil, fmt.Errorf("unknown author store %q", cfg.Kind)
	}
}
