// Package main initializes and starts the notehub HTTP server, setting up
// configuration, logging, the database connection and search index, the
// repositories, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/mkraev/notehub/internal/config"
	"github.com/mkraev/notehub/internal/db"
	"github.com/mkraev/notehub/internal/hash"
	"github.com/mkraev/notehub/internal/logger"
	"github.com/mkraev/notehub/internal/repository"
	"github.com/mkraev/notehub/internal/server/handler/http"
	"github.com/mkraev/notehub/internal/service"
	"github.com/mkraev/notehub/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is required (flag -s or env JWT_SECRET)")
	}

	// Initialize PostgreSQL and establish the schema and full-text index.
	// Search depends on the index, so startup fails if it cannot be created.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background repair of the derived search index.
	db.StartIndexSweeper(ctx, postgresDB, time.Hour, zapLogger)

	// Initialize repositories for accounts, notes and search.
	accountRepo := repository.NewPostgresAccountRepository(postgresDB)
	noteRepo := repository.NewPostgresNoteRepository(postgresDB)
	searchIndex := repository.NewPostgresSearchIndex(postgresDB)

	// Collaborators: password hashing and session tokens.
	hasher := hash.NewBcrypt(0)
	tokens := token.NewJWT([]byte(options.JWTSecret), token.DefaultTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(accountRepo, hasher, tokens)
	noteService := service.NewNoteService(noteRepo, searchIndex, zapLogger)

	// Create HTTP handlers for auth, notes and search.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	noteHandler := &http.NoteHandler{NoteService: noteService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, noteHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
		if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
