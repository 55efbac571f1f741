package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"bookcatalog/internal/config"
	"bookcatalog/internal/logger"
	"bookcatalog/internal/platform/dbconn"
	"bookcatalog/internal/platform/postgres"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		if err := goose.Create(nil, cfg.MigrationsDir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	if cfg.AuthorStore != config.StorePostgres {
		log.Fatalf("migrations apply to the postgres author store only, configured store is %q", cfg.AuthorStore)
	}

	ctx := context.Background()
	pool, err := postgres.Dial(cfg.MongoURL, 5*time.Second)(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", dbconn.RedactURL(cfg.MongoURL), err)
	}
	defer pool.Close()

	if err := migrate(pool, cfg.MigrationsDir, *command); err != nil {
		log.Fatal(err)
	}
}

func migrate(pool *pgxpool.Pool, dir, command string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("failed to rollback migrations: %w", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
	}
	return nil
}
