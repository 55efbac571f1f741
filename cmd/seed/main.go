package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/author"
	"bookcatalog/internal/config"
	"bookcatalog/internal/logger"
)

// seedAuthors are written by a fresh seed run. Last names repeat on purpose so
// the last-name lookup returns more than one record.
var seedAuthors = []author.CreateInput{
	{FirstName: "Joanne", LastName: "Rowling"},
	{FirstName: "Douglas", LastName: "Adams"},
	{FirstName: "Richard", LastName: "Adams"},
	{FirstName: "Bill", LastName: "Bryson"},
	{FirstName: "Mary", LastName: "GrandPré"},
	{FirstName: "Stephen", LastName: "Fry"},
	{FirstName: "Frederick", LastName: "Zimmerman"},
}

func main() {
	wait := flag.Duration("wait", 30*time.Second, "How long to wait for the author store to become reachable")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	repo, store, err := author.OpenStore(author.StoreConfig{
		Kind:       cfg.AuthorStore,
		URL:        cfg.MongoURL,
		Database:   cfg.MongoDatabase,
		Timeout:    cfg.StoreTimeout,
		RetryDelay: cfg.ConnectRetryDelay,
	}, log, nil)
	if err != nil {
		log.Fatalf("open author store: %v", err)
	}

	ctx := context.Background()
	store.Start(ctx)
	defer store.Close(ctx)

	select {
	case <-store.Ready():
	case <-time.After(*wait):
		log.Fatalf("author store not reachable after %s", *wait)
	}

	n, err := seed(ctx, author.NewService(repo), seedAuthors)
	if err != nil {
		log.Fatalf("seed authors: %v", err)
	}
	log.WithField("count", n).Info("authors seeded")
}

// seed inserts every input that is not already present with the same first
// and last name, and returns how many were inserted.
func seed(ctx context.Context, svc *author.Service, inputs []author.CreateInput) (int, error) {
	existing, err := svc.List(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[author.CreateInput]bool, len(existing))
	for _, a := range existing {
		have[author.CreateInput{FirstName: a.FirstName, LastName: a.LastName}] = true
	}

	inserted := 0
	for _, in := range inputs {
		if have[in] {
			continue
		}
		if _, err := svc.Create(ctx, in); err != nil {
			return inserted, err
		}
		have[in] = true
		inserted++
	}
	return inserted, nil
}
