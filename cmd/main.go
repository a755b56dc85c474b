package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roulette-lab/auth"
	"roulette-lab/infrastructure/ws"
	"roulette-lab/internal"
	"roulette-lab/repositories"
	"roulette-lab/runtime"
	"roulette-lab/runtime/workers"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes
// error reporting, so that deferred cleanup (database close, graceful HTTP
// shutdown) always executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Audit database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Core wiring
	repository := repositories.NewOutcomeRepository(db, log)
	directory := runtime.NewDirectory(log, runtime.Settings{
		Lookahead:       config.Lookahead,
		TableCapacity:   config.TableCapacity,
		StartingBalance: config.StartingBalance,
		BetLimit:        config.BetLimit,
	})
	registry := runtime.NewRegistry()
	coordinator := runtime.NewCoordinator(log, directory, registry, repository)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Background workers under supervision
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	supervisor.Add(
		workers.NewTelemetryWorker(log, directory, config.TelemetryInterval),
		workers.NewAuditGCWorker(log, db, config.AuditGCInterval),
	)
	go supervisor.Run(ctx)

	// 6. Game server (WebSocket)
	gameServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler: ws.NewServer(log, coordinator, config.ConnectionBufferSize),
	}

	// 7. Admin server (inspection/audit)
	authenticator := auth.NewAuthenticator([]byte(config.AdminTokenKey), config.AdminTokenDuration)
	adminServer := &http.Server{
		Addr: fmt.Sprintf("%s:%d", config.Host, config.AdminPort),
		Handler: internal.NewAdminServer(log, directory, repository,
			authenticator, config.AdminSecretHash).Handler(),
	}

	errChan := make(chan error, 2)
	go func() {
		log.Info("Starting game server", "address", gameServer.Addr, "at", time.Now().UTC())
		if err := gameServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("game server error: %w", err)
		}
	}()
	go func() {
		log.Info("Starting admin server", "address", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("admin server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = gameServer.Shutdown(shutdownCtx)
	_ = adminServer.Shutdown(shutdownCtx)
	supervisor.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
