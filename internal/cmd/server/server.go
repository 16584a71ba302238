// Package server parses server command flags and starts the session
// service.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tycho-games/magnate/internal/game/domain"
	entrypoint "github.com/tycho-games/magnate/internal/platform/cmd"
	httpserver "github.com/tycho-games/magnate/internal/server"
	"github.com/tycho-games/magnate/internal/storage/bbolt"
)

const shutdownGracePeriod = 5 * time.Second

// Config holds server command configuration.
type Config struct {
	Port          int           `env:"MAGNATE_PORT" envDefault:"8080"`
	Addr          string        `env:"MAGNATE_ADDR"`
	JournalPath   string        `env:"MAGNATE_JOURNAL_PATH"`
	Seed          int64         `env:"MAGNATE_SEED"`
	TurnTimeLimit time.Duration `env:"MAGNATE_TURN_TIME_LIMIT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The server listen address (overrides -port)")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "Path to the event journal database (empty disables journaling)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Dice seed (0 uses the wall clock)")
	fs.DurationVar(&cfg.TurnTimeLimit, "turn-time-limit", cfg.TurnTimeLimit, "Turn time limit override (0 keeps the default)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the session service and blocks until ctx is cancelled or
// the listener fails.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, "magnate", func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	rules := domain.DefaultRules()
	if cfg.TurnTimeLimit > 0 {
		rules.TurnTimeLimit = cfg.TurnTimeLimit
	}
	serverCfg := httpserver.Config{Rules: rules, Seed: cfg.Seed}
	if cfg.JournalPath != "" {
		store, err := bbolt.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		serverCfg.Journal = store
	}

	svc := httpserver.New(serverCfg)
	defer svc.Close()

	addr := cfg.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	httpSrv := &http.Server{
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("server listening at %v", listener.Addr())
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
