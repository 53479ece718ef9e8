package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edvin/accounts/internal/api"
	"github.com/edvin/accounts/internal/config"
	"github.com/edvin/accounts/internal/core"
	"github.com/edvin/accounts/internal/db"
	"github.com/edvin/accounts/internal/logging"
	"github.com/edvin/accounts/internal/mail"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "create-api-key":
			createAPIKey(os.Args[2:])
			return
		case "seed-pages":
			seedPages()
			return
		}
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "migrations", "Migration files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("accounts-api"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, *migrateDirFlag); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	mailer := mail.NewClient(cfg.MailAPIURL, cfg.MailAPIToken)

	srv := api.NewServer(logger, pool, mailer, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting accounts API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

func createAPIKey(args []string) {
	fs := flag.NewFlagSet("create-api-key", flag.ExitOnError)
	name := fs.String("name", "", "Name for the API key (required)")
	fs.Parse(args)

	if *name == "" {
		fmt.Fprintln(os.Stderr, "error: --name is required")
		fmt.Fprintln(os.Stderr, "usage: accounts-api create-api-key --name <name>")
		os.Exit(1)
	}

	pool := mustConnect()
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := core.NewAPIKeyService(pool)
	key, rawKey, err := svc.Create(ctx, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API key created successfully.\n\n")
	fmt.Printf("  Name:   %s\n", key.Name)
	fmt.Printf("  ID:     %s\n", key.ID)
	fmt.Printf("  Key:    %s\n\n", rawKey)
	fmt.Printf("Save this key, it will not be shown again.\n")
}

// seedPages creates the default activation and password-reset pages and
// points the page-id settings at them.
func seedPages() {
	pool := mustConnect()
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	settings := core.NewSettingsService(pool)
	pages := core.NewPageService(pool)
	if err := pages.SeedDefaults(ctx, settings); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to seed pages: %v\n", err)
		os.Exit(1)
	}

	activationID, _ := settings.Get(ctx, core.SettingActivationPageID)
	resetID, _ := settings.Get(ctx, core.SettingPasswordResetPageID)
	fmt.Printf("Pages seeded.\n\n")
	fmt.Printf("  Activation page:     %s\n", activationID)
	fmt.Printf("  Password reset page: %s\n", resetID)
}

func mustConnect() *pgxpool.Pool {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	return pool
}
