package author

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is where author documents live.
const CollectionName = "authors"

// MongoClients hands out the shared client. dbconn.Manager implements it.
type MongoClients interface {
	Session() (*mongo.Client, error)
}

type mongoAuthor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
}

func (d mongoAuthor) toAuthor() Author {
	return Author{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}
}

type MongoRepo struct {
	clients  MongoClients
	database string
	timeout  time.Duration
}

func NewMongoRepo(clients MongoClients, database string, timeout time.Duration) *MongoRepo {
	return &MongoRepo{clients: clients, database: database, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) collection() (*mongo.Collection, error) {
	client, err := r.clients.Session()
	if err != nil {
		return nil, err
	}
	return client.Database(r.database).Collection(CollectionName), nil
}

func (r *MongoRepo) find(ctx context.Context, filter bson.D) ([]Author, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := coll.Find(timeoutCtx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []mongoAuthor
	if err := cursor.All(timeoutCtx, &docs); err != nil {
		return nil, err
	}

	out := make([]Author, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toAuthor())
	}
	return out, nil
}

// List returns every author in insertion order.
func (r *MongoRepo) List(ctx context.Context) ([]Author, error) {
	authors, err := r.find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// ListByLastName returns authors whose lastName equals lastName exactly.
func (r *MongoRepo) ListByLastName(ctx context.Context, lastName string) ([]Author, error) {
	authors, err := r.find(ctx, bson.D{{Key: "lastName", Value: lastName}})
	if err != nil {
		return nil, fmt.Errorf("list authors by last name: %w", err)
	}
	return authors, nil
}

func (r *MongoRepo) Create(ctx context.Context, a *Author) error {
	coll, err := r.collection()
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := coll.InsertOne(timeoutCtx, mongoAuthor{FirstName: a.FirstName, LastName: a.LastName})
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("create author: unexpected id type %T", res.InsertedID)
	}
	a.ID = id.Hex()
	return nil
}
