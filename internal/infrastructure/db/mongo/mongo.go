package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/societyhub/apartment-system/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// NewRepositories wires every Mongo-backed repository onto db.
func NewRepositories(db *mongo.Database) ports.Repositories {
	return ports.Repositories{
		Users:         NewUserRepository(db),
		Apartments:    NewApartmentRepository(db),
		Maintenance:   NewMaintenanceRepository(db),
		Payments:      NewPaymentRepository(db),
		Visitors:      NewVisitorRepository(db),
		Announcements: NewAnnouncementRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every collection that needs one.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, r := range []indexer{
		NewUserRepository(db),
		NewApartmentRepository(db),
		NewMaintenanceRepository(db),
		NewPaymentRepository(db),
		NewVisitorRepository(db),
		NewNotificationRepository(db),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}
