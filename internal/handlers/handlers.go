package handlers

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mlr-stats/stats-api/internal/logic"
	"github.com/mlr-stats/stats-api/internal/models"
)

// QueryEventQueue defines the interface for the query analytics worker pool
type QueryEventQueue interface {
	Enqueue(event *models.QueryEvent) bool
	QueueDepth() int
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	// Queue is nil when analytics are disabled.
	Queue      QueryEventQueue
	Postgres   Pinger
	ClickHouse driver.Conn
	Redis      RedisPinger
	Logger     *zap.Logger
	// Services
	Stats   logic.StatsService
	Seasons logic.SeasonResolver
	// MaxLimit caps the limit parameter of player stats queries.
	MaxLimit int
}

type Handler struct {
	queue     QueryEventQueue
	pg        Pinger
	ch        driver.Conn
	redis     RedisPinger
	logger    *zap.SugaredLogger
	validator *validator.Validate
	stats     logic.StatsService
	seasons   logic.SeasonResolver
	maxLimit  int
	now       func() time.Time
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		queue:     cfg.Queue,
		pg:        cfg.Postgres,
		ch:        cfg.ClickHouse,
		redis:     cfg.Redis,
		logger:    logger.Sugar(),
		validator: validator.New(),
		stats:     cfg.Stats,
		seasons:   cfg.Seasons,
		maxLimit:  cfg.MaxLimit,
		now:       time.Now,
	}
}
