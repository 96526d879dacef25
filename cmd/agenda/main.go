package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agenda/internal/config"
	"agenda/internal/console"
	"agenda/internal/logger"
	"agenda/internal/service"
	"agenda/internal/store"
	"agenda/internal/throttle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Errorw("agenda failed", "error", err)
		lg.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, lg *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeBackend()

	st := store.New(backend)
	if err := st.Load(ctx); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	lg.Infow("agenda start", "backend", cfg.Backend)

	svc := service.New(st, lg)
	limiter := throttle.NewRateLimiter(cfg.LoginRPS, cfg.LoginBurst)
	runErr := console.New(svc, limiter, os.Stdin, os.Stdout, lg).Run(ctx)

	// save even when the loop was interrupted; ctx may already be cancelled
	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.FlushTimeout)
	defer cancel()
	if err := st.Flush(flushCtx); err != nil {
		lg.Errorw("flush failed", "error", err)
		return fmt.Errorf("flush: %w", err)
	}
	lg.Infow("agenda exit")
	return runErr
}

func openBackend(ctx context.Context, cfg *config.Config, lg *zap.SugaredLogger) (store.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		// database
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx, cfg.Migration); err != nil {
			pool.Close()
			return nil, nil, err
		}
		lg.Infow("connected to postgres", "migration", cfg.Migration)
		return pg, pool.Close, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("data dir: %w", err)
		}
		return store.NewTextFile(cfg.DataDir, cfg.UsersFile, cfg.MeetingsFile), func() {}, nil
	}
}
