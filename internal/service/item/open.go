package item

import (
	"context"
	"fmt"

	"github.com/janisto/echo-sortable/internal/platform/firebase"
)

// Store drivers accepted by Open.
const (
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// StoreConfig selects and configures the storage backend.
type StoreConfig struct {
	Driver            string
	DatabaseURL       string
	FirebaseProjectID string
}

// Open creates the repository for cfg.Driver. The returned close function
// releases whatever the repository holds and must be called on shutdown.
func Open(ctx context.Context, cfg StoreConfig) (Repository, func() error, error) {
	switch cfg.Driver {
	case DriverSQLite:
		repo, err := OpenSQLite(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case DriverPostgres:
		repo, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case DriverFirestore:
		clients, err := firebase.InitializeClients(ctx, firebase.Config{ProjectID: cfg.FirebaseProjectID})
		if err != nil {
			return nil, nil, err
		}
		return NewFirestoreRepository(clients.Firestore), clients.Close, nil

	case DriverMemory:
		repo := NewMemoryRepository()
		return repo, repo.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
