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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medstock/medstock/internal/api"
	"github.com/medstock/medstock/internal/config"
	"github.com/medstock/medstock/internal/db"
	"github.com/medstock/medstock/internal/inventory"
	"github.com/medstock/medstock/internal/report"
	"github.com/medstock/medstock/internal/store"
	"github.com/medstock/medstock/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: medstock <serve|seed|report>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "seed":
		cmdSeed(os.Args[2:])
	case "report":
		cmdReport(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: medstock <serve|seed|report>\n", os.Args[1])
		os.Exit(1)
	}
}

// loadConfig reads the environment configuration and registers flags on fs
// that override it, so flag defaults shown in -help reflect the environment.
func loadConfig(ctx context.Context, fs *flag.FlagSet) *config.Config {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to SQLite database file")
	fs.StringVar(&cfg.RemoteURL, "remote", cfg.RemoteURL, "remote document store base URL (overrides -db)")
	fs.StringVar(&cfg.RemoteToken, "token", cfg.RemoteToken, "remote document store bearer token")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	return cfg
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown log level %q\n", level)
		os.Exit(1)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

// openRepository builds the storage backend the configuration asks for, loads
// the inventory from it and returns a cleanup function.
func openRepository(ctx context.Context, cfg *config.Config) (*inventory.Repository, func(), error) {
	var backend store.Backend
	cleanup := func() {}

	if cfg.RemoteURL != "" {
		backend = store.NewRemote(cfg.RemoteURL, cfg.RemoteToken)
		log.Info().Str("url", cfg.RemoteURL).Msg("using remote document store")
	} else {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("ensuring database schema: %w", err)
		}
		backend = store.NewSQLite(database)
		cleanup = func() { database.Close() }
		log.Info().Str("path", cfg.DBPath).Msg("database ready")
	}

	repo := inventory.New(backend, log.Logger)
	if err := repo.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("loading inventory: %w", err)
	}
	log.Info().Int("items", repo.Len()).Msg("inventory loaded")

	return repo, cleanup, nil
}

func cmdServe(args []string) {
	ctx := context.Background()

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg := loadConfig(ctx, fs)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	seed := fs.Bool("seed", false, "seed the sample catalog when the inventory is empty")
	fs.Parse(args)

	setupLogging(cfg.LogLevel)

	repo, cleanup, err := openRepository(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}
	defer cleanup()

	if *seed {
		n, err := repo.Seed(ctx)
		if err != nil {
			log.Error().Err(err).Msg("seeding failed")
			os.Exit(1)
		}
		if n > 0 {
			log.Info().Int("items", n).Msg("seeded sample catalog")
		}
	}

	webRouter, err := web.NewRouter(repo)
	if err != nil {
		log.Error().Err(err).Msg("setting up web router failed")
		os.Exit(1)
	}

	// API routes take priority, web pages handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(repo))
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("server started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func cmdSeed(args []string) {
	ctx := context.Background()

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	cfg := loadConfig(ctx, fs)
	fs.Parse(args)

	setupLogging(cfg.LogLevel)

	repo, cleanup, err := openRepository(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}
	defer cleanup()

	n, err := repo.Seed(ctx)
	if err != nil {
		log.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
	if n == 0 {
		fmt.Println("Inventory is not empty, nothing seeded.")
		return
	}
	fmt.Printf("Seeded %d sample items.\n", n)
}

func cmdReport(args []string) {
	ctx := context.Background()

	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfg := loadConfig(ctx, fs)
	out := fs.String("out", "", "output file (default: stock_report_<date>.pdf)")
	fs.Parse(args)

	setupLogging(cfg.LogLevel)

	repo, cleanup, err := openRepository(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}
	defer cleanup()

	now := time.Now()
	pdf, err := report.Generate(repo.List(inventory.Filter{}), now)
	if err != nil {
		log.Error().Err(err).Msg("generating report failed")
		os.Exit(1)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("stock_report_%s.pdf", now.Format("2006-01-02"))
	}
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		log.Error().Err(err).Msg("writing report failed")
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", path)
}
