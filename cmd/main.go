// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shivanand-hulikatti/events-catalog/internal/config"
	"github.com/Shivanand-hulikatti/events-catalog/internal/database"
	"github.com/Shivanand-hulikatti/events-catalog/internal/handler"
	"github.com/Shivanand-hulikatti/events-catalog/internal/repository"
	"github.com/Shivanand-hulikatti/events-catalog/internal/service"
	"github.com/Shivanand-hulikatti/events-catalog/internal/telemetry"
)

type eventRepository interface {
	service.EventSource
	service.EventStore
}

func main() {
	memory := flag.Bool("memory", false, "serve an in-memory catalog seeded with sample events instead of PostgreSQL")
	flag.Parse()

	ctx := context.Background()

	conf, err := config.GetConfig(ctx)
	if err != nil {
		slog.Error("unable to get config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(conf))

	loc, err := conf.Location()
	if err != nil {
		slog.Error("unable to load timezone", "error", err)
		os.Exit(1)
	}

	// ── 1. Tracing ────────────────────────────────────────────────────────
	_, shutdownTracing, err := telemetry.New(ctx, telemetry.Config{
		Service:       conf.OTEL.ServiceName,
		Version:       "1.0.0",
		Environment:   os.Getenv("ENVIRONMENT"),
		CollectorAddr: conf.OTEL.CollectorAddr,
	})
	if err != nil {
		slog.Error("unable to start tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("tracing shutdown failed", "error", err)
		}
	}()

	// ── 2. Data source ────────────────────────────────────────────────────
	var repo eventRepository
	if *memory {
		repo = repository.NewMemoryEventRepository()
		slog.Info("using in-memory catalog")
	} else {
		if conf.Migrate {
			if err := database.Migrate(conf); err != nil {
				slog.Error("unable to migrate", "error", err)
				os.Exit(1)
			}
		}
		pool, err := database.NewPool(ctx, conf)
		if err != nil {
			slog.Error("unable to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		slog.Info("connected to postgres", "host", conf.DB.Host, "db", conf.DB.Name)
		repo = repository.NewEventRepository(pool)
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	opts := []service.Option{service.WithLocation(loc), service.WithLogger(slog.Default())}
	searchSvc := service.NewSearchService(repo, opts...)
	eventSvc := service.NewEventService(repo, opts...)

	if *memory {
		if err := seed(ctx, eventSvc, loc); err != nil {
			slog.Error("unable to seed catalog", "error", err)
			os.Exit(1)
		}
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", conf.API.Port),
		Handler:      handler.NewRouter(handler.NewEventHandler(searchSvc, eventSvc)),
		ReadTimeout:  conf.API.ReadTimeout,
		WriteTimeout: conf.API.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// ── 4. Start server with graceful shutdown ────────────────────────────
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		slog.Info("HTTP server stopped accepting connections")
		return nil
	})

	g.Go(func() error {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(c)

		select {
		case sig := <-c:
			slog.Info("received shutdown signal", "signal", sig)
			return fmt.Errorf("received signal: %s", sig)
		case <-gCtx.Done():
			return gCtx.Err()
		}
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, release := context.WithTimeout(context.Background(), 10*time.Second)
		defer release()

		slog.Info("shutting down HTTP server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Info("application terminated", "reason", err)
	}
}

func newLogger(conf *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: conf.Level()}
	if conf.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
