package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/redflag/internal/analysis"
	"github.com/jonathan/redflag/internal/config"
	"github.com/jonathan/redflag/internal/db"
	"github.com/jonathan/redflag/internal/persist"
	"github.com/jonathan/redflag/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing GET /api/health, POST /api/analyze and
GET /api/profiles/{username}. Analyses are stored when DATABASE_URL is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env var or 3000)")
	rootCmd.AddCommand(serveCmd)
}

// storage bundles the optional database and its write queue.
type storage struct {
	db    *db.DB
	queue *persist.Queue
}

// openStorage connects to the database when a URL is configured.
// It returns nil storage when persistence is disabled.
func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (*storage, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, persistence disabled")
		return nil, nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	return &storage{
		db:    database,
		queue: persist.NewQueue(database, persist.WithLogger(logger)),
	}, nil
}

// recorder returns the queue as an analysis.Recorder, or nil without storage.
func (s *storage) recorder() analysis.Recorder {
	if s == nil {
		return nil
	}
	return s.queue
}

// profiles returns the database as a server.ProfileStore, or nil without storage.
func (s *storage) profiles() server.ProfileStore {
	if s == nil {
		return nil
	}
	return s.db
}

// close drains pending writes before closing the pool.
func (s *storage) close(logger *slog.Logger) {
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.queue.Close(ctx); err != nil {
		logger.Warn("pending profile writes abandoned", "error", err)
	}
	s.db.Close()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	logger := newLogger(os.Stderr, cfg.Verbose, true)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.close(logger)

	svc, client, err := newService(ctx, cfg, logger, store.recorder())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	srv := server.New(server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	}, svc, store.profiles())

	return srv.Start(ctx)
}
