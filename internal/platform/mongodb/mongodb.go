package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Dial returns a dial function that connects to uri and pings the primary.
// timeout bounds both server selection and the ping.
func Dial(uri string, timeout time.Duration) func(ctx context.Context) (*mongo.Client, error) {
	return func(ctx context.Context) (*mongo.Client, error) {
		opts := options.Client().
			ApplyURI(uri).
			SetServerSelectionTimeout(timeout).
			SetConnectTimeout(timeout)

		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		return client, nil
	}
}

func Disconnect(ctx context.Context, client *mongo.Client) error {
	return client.Disconnect(ctx)
}
