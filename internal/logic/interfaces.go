package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/mlr-stats/stats-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// StatsService serves leaderboards and player stat splits.
type StatsService interface {
	StatLeaders(ctx context.Context, params StatLeadersParams) ([]models.StatLeadersGroup, error)
	PlayerStats(ctx context.Context, params PlayerStatsParams) ([]models.PlayerStatsGroup, error)
}

// SeasonResolver resolves season tokens and season boundaries.
type SeasonResolver interface {
	CurrentSeason(ctx context.Context) (int64, error)
	SeasonWindow(ctx context.Context, season int64) (*models.SeasonWindow, error)
}

// StatsRepository is the data access the stats service runs on.
type StatsRepository interface {
	LeaderboardRows(ctx context.Context, group models.StatGroup, season *int64) ([]models.LeaderboardRow, error)
	FindPlayerStats(ctx context.Context, q PlayerStatsQuery) ([]models.PlayerStatRecord, error)
}
