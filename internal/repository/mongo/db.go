// Package mongo stores the request and conversation logs in MongoDB
// collections named like the relational tables.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rrens/shopchat/internal/config"
)

const (
	requestsCollection      = "solicitudes"
	conversationsCollection = "conversaciones"
	defaultDatabase         = "mi_tienda_tech"
)

// newestFirst orders by creation time, then by insertion sequence
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "seq", Value: -1}}

// DB wraps the client and the selected database
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewDB connects, pings and ensures the indexes used by the listings
func NewDB(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.DSN()).
		SetConnectTimeout(10 * time.Second)
	if cfg.URL == "" && cfg.User != "" {
		clientOpts.SetAuth(options.Credential{Username: cfg.User, Password: cfg.Password})
	}
	if cfg.MaxConns > 0 {
		clientOpts.SetMaxPoolSize(uint64(cfg.MaxConns))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	name := cfg.Database
	if name == "" {
		name = defaultDatabase
	}

	db := &DB{client: client, db: client.Database(name)}
	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.db.Collection(requestsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: newestFirst,
	})
	if err != nil {
		return fmt.Errorf("failed to create request index: %w", err)
	}

	_, err = d.db.Collection(conversationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: -1}, {Key: "seq", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create conversation index: %w", err)
	}
	return nil
}

// Close disconnects the client
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Ping verifies database connectivity
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}
