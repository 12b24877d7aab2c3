package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/mlr-stats/stats-api/internal/docs"

	"github.com/mlr-stats/stats-api/internal/config"
	"github.com/mlr-stats/stats-api/internal/handlers"
	"github.com/mlr-stats/stats-api/internal/logic"
	"github.com/mlr-stats/stats-api/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logger.Sugar()

	// Postgres
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		return fmt.Errorf("pinging postgres: %w", err)
	}
	log.Info("Connected to Postgres")

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The season cache degrades to Postgres lookups
		log.Warnw("Redis unavailable at startup", "error", err)
	} else {
		log.Info("Connected to Redis")
	}

	// ClickHouse analytics, optional
	var ch driver.Conn
	var queue handlers.QueryEventQueue
	if cfg.AnalyticsEnabled() {
		chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			return fmt.Errorf("parsing clickhouse url: %w", err)
		}
		conn, err := clickhouse.Open(chOpts)
		if err != nil {
			return fmt.Errorf("connecting to clickhouse: %w", err)
		}
		defer conn.Close()
		if err := conn.Ping(ctx); err != nil {
			return fmt.Errorf("pinging clickhouse: %w", err)
		}
		log.Info("Connected to ClickHouse")

		pool := worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    conn,
			Logger:        logger,
		})
		// Detached from the signal context so Stop can drain the queue
		pool.Start(context.Background())
		defer pool.Stop()

		ch = conn
		queue = pool
	} else {
		log.Info("CLICKHOUSE_URL not set, query analytics disabled")
	}

	seasons := logic.NewSeasonResolver(logic.SeasonResolverConfig{
		Postgres: pg,
		Redis:    rdb,
		CacheTTL: cfg.SeasonCacheTTL,
		Logger:   log,
	})
	stats := logic.NewStatsService(logic.NewStatsRepository(pg), seasons)

	h := handlers.New(handlers.Config{
		Queue:      queue,
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Stats:      stats,
		Seasons:    seasons,
		MaxLimit:   cfg.MaxLimit,
	})

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: h.Routes(handlers.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("Stats API listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
