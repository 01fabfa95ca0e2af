package main

import (
	"campus-chat/auth"
	"campus-chat/infrastructure/httpserver"
	"campus-chat/infrastructure/ws"
	"campus-chat/internal"
	"campus-chat/repositories"
	"campus-chat/runtime"
	"campus-chat/runtime/workers"
	"campus-chat/scheduler"
	"campus-chat/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/sync/errgroup"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a fatal error.
// Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	backoff, err := internal.Backoff(config.DeliveryBackoff)
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Stores and services
	clock := scheduler.NewSystem()
	messages := repositories.NewMessageRepository(db, log)
	participants := repositories.NewParticipantRepository(db)
	receipts := repositories.NewReceiptRepository(db)
	queue := repositories.NewQueueRepository(db)
	users := repositories.NewUserRepository(db)
	rooms := repositories.NewRoomRepository(db)

	registry := runtime.NewRegistry(log, config.SinkTimeout)
	typing := services.NewTypingTracker(log, clock, config.TypingTTL)
	delivery := services.NewDeliveryQueue(log, queue, messages, clock, config.DeliveryMaxRetries, backoff)
	coordinator := runtime.NewCoordinator(log,
		registry,
		runtime.NewPresenceTracker(log, users, clock),
		runtime.NewLamportClock(),
		services.NewParticipantService(log, participants, rooms, users, clock),
		delivery,
		services.NewReceiptService(log, messages, receipts, participants, clock),
		typing,
		messages,
		users,
		clock,
		config.ReplySnippetLength,
	)

	// 4. Supervised background workers
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	supervisor.Add(
		workers.NewTypingSweeperWorker(log, typing, clock, config.TypingSweepInterval),
		workers.NewRetrySweeperWorker(log, delivery, coordinator.FanOut, config.RetrySweepInterval),
		workers.NewQueueDepthWorker(log, queue, config.MetricInterval),
	)

	// 5. Transport
	sessions := ws.NewHandler(log, coordinator, auth.NewTokenIssuer(config.JWTSecret, config.AuthTokenDuration), ws.Options{
		WriteWait:          config.WriteWait,
		PongWait:           config.PongWait,
		MaxMessageSize:     config.MaxMessageSize,
		BufferSize:         config.ConnectionBufferSize,
		AllowQueryIdentity: config.AllowQueryIdentity,
	})
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := httpserver.NewServer(address, httpserver.NewRouter(log, sessions, db))

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		supervisor.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		log.Info("Starting chat server", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if closeErr := sessions.Close(shutdownCtx); closeErr != nil {
			log.Warn("Sessions still open at shutdown", "error", closeErr)
		}
		delivery.Stop()
		registry.Close()
		supervisor.Stop()
		return err
	})

	if err := g.Wait(); err != nil {
		return exitRuntime, err
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
