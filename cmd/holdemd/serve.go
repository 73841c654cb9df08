package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/greenfelt/holdem/internal/randutil"
	"github.com/greenfelt/holdem/internal/room"
	"github.com/greenfelt/holdem/internal/server"
)

// ServeCmd runs the room server
type ServeCmd struct {
	Config string `kong:"default='holdemd.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for shuffles (optional)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Server.LogLevel, c.Debug)

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	manager := room.NewManager(room.NewMemoryStore(), rng, logger)
	srv := server.NewServer(cfg, manager, quartz.NewReal(), logger)

	logger.Info("Starting hold'em server",
		"address", cfg.Address(),
		"small_blind", cfg.Table.SmallBlind,
		"big_blind", cfg.Table.BigBlind,
		"starting_stack", cfg.Table.StartingStack,
		"max_seats", cfg.Table.MaxSeats,
		"turn_timeout", cfg.Table.TurnTimeout(),
		"street_pause", cfg.Table.StreetPause())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func setupLogger(level string, debug bool) *log.Logger {
	logLevel := log.InfoLevel
	if parsed, err := log.ParseLevel(level); err == nil {
		logLevel = parsed
	}
	if debug {
		logLevel = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           logLevel,
	})
}
