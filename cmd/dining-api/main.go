// main is the entry point of the campus dining API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (with optional .env overrides)
//  2. Initialise the logger
//  3. Open the selected storage backend (SQLite file or in-memory)
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/dining-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/dining-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meera-iyer/campus-dining-api/internal/config"
	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/address"
	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/dininglocation"
	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/health"
	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/mealplan"
	"github.com/meera-iyer/campus-dining-api/internal/http/handlers/person"
	"github.com/meera-iyer/campus-dining-api/internal/storage"
	"github.com/meera-iyer/campus-dining-api/internal/storage/memory"
	"github.com/meera-iyer/campus-dining-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and exits if anything is wrong.
	// The name "Must" signals: if this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21). Structured
	// logging writes key=value pairs rather than plain strings, making
	// logs easy to filter/search in aggregators.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting dining-api",
		slog.String("env", cfg.Env),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Both backends satisfy the storage.Storage interface, so the rest
	// of the program never knows which one it got.
	var store storage.Storage
	switch cfg.StorageDriver {
	case "memory":
		store = memory.New()
		log.Info("storage initialised", slog.String("driver", "memory"))
	default:
		db, err := sqlite.New(cfg)
		if err != nil {
			log.Error("failed to initialise storage",
				slog.String("error", err.Error()))
			os.Exit(1) // non-zero exit code signals failure to the OS / CI system
		}
		store = db
		log.Info("storage initialised",
			slog.String("driver", "sqlite"),
			slog.String("path", cfg.StoragePath))
	}

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	// The handler functions (person.New, person.GetByID, etc.) are
	// FACTORIES — they receive `store` and return the actual handler.
	// This is the dependency injection / closure pattern.
	//
	// Each resource exposes the same five endpoints:
	//   POST   /<resource>        → create a record
	//   GET    /<resource>        → list all records
	//   GET    /<resource>/{id}   → get one record by id
	//   PUT    /<resource>/{id}   → partial update
	//   DELETE /<resource>/{id}   → delete
	router := http.NewServeMux()

	router.HandleFunc("POST /person", person.New(store))
	router.HandleFunc("GET /person", person.GetList(store))
	router.HandleFunc("GET /person/{id}", person.GetByID(store))
	router.HandleFunc("PUT /person/{id}", person.Update(store))
	router.HandleFunc("DELETE /person/{id}", person.Delete(store))

	router.HandleFunc("POST /address", address.New(store))
	router.HandleFunc("GET /address", address.GetList(store))
	router.HandleFunc("GET /address/{id}", address.GetByID(store))
	router.HandleFunc("PUT /address/{id}", address.Update(store))
	router.HandleFunc("DELETE /address/{id}", address.Delete(store))

	router.HandleFunc("POST /meal-plan", mealplan.New(store))
	router.HandleFunc("GET /meal-plan", mealplan.GetList(store))
	router.HandleFunc("GET /meal-plan/{id}", mealplan.GetByID(store))
	router.HandleFunc("PUT /meal-plan/{id}", mealplan.Update(store))
	router.HandleFunc("DELETE /meal-plan/{id}", mealplan.Delete(store))

	router.HandleFunc("POST /dining-location", dininglocation.New(store))
	router.HandleFunc("GET /dining-location", dininglocation.GetList(store))
	router.HandleFunc("GET /dining-location/{id}", dininglocation.GetByID(store))
	router.HandleFunc("PUT /dining-location/{id}", dininglocation.Update(store))
	router.HandleFunc("DELETE /dining-location/{id}", dininglocation.Delete(store))

	router.HandleFunc("GET /health", health.New())

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr, // e.g. "localhost:8082"
		Handler: router,

		// Timeouts prevent slow clients from holding connections open
		// indefinitely.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever, so it runs in its own goroutine —
	// otherwise the graceful-shutdown code below would never execute.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't want to log it as an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel of size 1 so we don't miss a signal if main is
	// briefly busy. os.Interrupt = Ctrl+C; SIGTERM is what `kill` and
	// container orchestrators send.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Shutdown stops accepting new connections and waits (up to the
	// context deadline) for in-flight requests to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON output at DEBUG level.
// Production (prod): JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
