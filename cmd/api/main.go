package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"bookcatalog/internal/api"
	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/logger"
	"bookcatalog/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	m := metrics.New()

	books, err := book.LoadEmbedded()
	if err != nil {
		return err
	}
	log.WithField("books", len(books)).Info("catalog loaded")

	authorRepo, store, err := author.OpenStore(author.StoreConfig{
		Kind:       cfg.AuthorStore,
		URL:        cfg.MongoURL,
		Database:   cfg.MongoDatabase,
		Timeout:    cfg.StoreTimeout,
		RetryDelay: cfg.ConnectRetryDelay,
	}, log, m)
	if err != nil {
		return err
	}
	// The server starts serving right away; author routes answer 500 until
	// the store is reachable.
	store.Start(ctx)

	router := api.NewRouter(api.Deps{
		Books:   book.NewHTTPHandler(book.NewService(book.NewCatalogRepo(books)), log),
		Authors: author.NewHTTPHandler(author.NewService(authorRepo), log),
		Metrics: m,
		Ready:   store.Connected,
	})
	srv := api.NewServer(ctx, api.ServerConfig{
		Addr:           cfg.Addr(),
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustedProxies: cfg.TrustedProxies,
	}, router, log, m)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server running on http://localhost%s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = store.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	return store.Close(shutdownCtx)
}
