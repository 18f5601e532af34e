package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"imobiliare/gateway"
	"imobiliare/moderation"
	"imobiliare/realtime"
	"imobiliare/repositories"
	"imobiliare/runtime/workers"
	"imobiliare/services"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
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

// run wires everything together and owns the lifecycle, so that defers
// (database close, index close) always execute before the process exits
// and main stays trivially testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	if err := os.MkdirAll(config.UploadsDir, 0o755); err != nil {
		return fmt.Errorf("uploads dir creation failed: %w", err)
	}

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	indexWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = indexWriter.Close()
	}()

	// 3. Repositories
	conversationRepository := repositories.NewConversationRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	userRepository := repositories.NewUserRepository(db)
	listingRepository := repositories.NewListingRepository(db, indexWriter, log)

	// 4. Moderation
	banned, err := moderation.LoadBannedPhrases()
	if err != nil {
		return fmt.Errorf("banned phrases loading failed: %w", err)
	}
	maskChar, err := CharacterRune(config.ModerationCharReplacement)
	if err != nil {
		return err
	}
	moderator, err := moderation.NewModerator(banned.Phrases, maskChar)
	if err != nil {
		return fmt.Errorf("moderator setup failed: %w", err)
	}
	log.Info("Moderation ready", "phrases", len(banned.Phrases), "languages", banned.Languages)

	// 5. Services & Realtime
	indexQueue := make(chan services.IndexCommand, config.IndexQueueSize)
	authService := services.NewAuthService(userRepository, config.TokenDuration)
	conversationService := services.NewConversationService(conversationRepository, messageRepository, &moderator, log)
	listingService := services.NewListingService(listingRepository, indexQueue, log)
	broker := realtime.NewBroker(log)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewListingIndexerWorker(log, listingRepository, indexQueue),
		workers.NewTelemetryWorker(log, config.TelemetryInterval),
	)
	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(ctx)
	}()

	// 8. HTTP server
	router := gateway.NewRouter(authService, conversationService, listingService, broker, log, gateway.Config{
		UploadsDir:       config.UploadsDir,
		ConnectionBuffer: config.ConnectionBufferSize,
	})
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 10. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown did not complete cleanly", "error", err)
	}
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}
