package logic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mlr-stats/stats-api/internal/models"
)

const currentSeasonCacheKey = "stats:season:current"

// ErrSeasonNotFound is returned when no season matches a lookup.
var ErrSeasonNotFound = errors.New("season not found")

// SeasonResolverConfig configures the Postgres backed season resolver.
// Redis is optional; without it every lookup hits Postgres.
type SeasonResolverConfig struct {
	Postgres PgPool
	Redis    RedisClient
	CacheTTL time.Duration
	Logger   *zap.SugaredLogger
}

type seasonResolver struct {
	pg     PgPool
	redis  RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewSeasonResolver(cfg SeasonResolverConfig) SeasonResolver {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &seasonResolver{
		pg:     cfg.Postgres,
		redis:  cfg.Redis,
		ttl:    cfg.CacheTTL,
		logger: cfg.Logger,
	}
}

// CurrentSeason returns the most recent season that has started.
func (r *seasonResolver) CurrentSeason(ctx context.Context) (int64, error) {
	if r.redis != nil {
		cached, err := r.redis.Get(ctx, currentSeasonCacheKey).Result()
		switch {
		case err == nil:
			if season, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return season, nil
			}
			r.logger.Warnw("Ignoring malformed cached season", "value", cached)
		case !errors.Is(err, redis.Nil):
			r.logger.Warnw("Failed to read cached current season", "error", err)
		}
	}

	var season int64
	err := r.pg.QueryRow(ctx, `
		SELECT season
		FROM seasons
		WHERE season_start <= now()
		ORDER BY season_start DESC
		LIMIT 1
	`).Scan(&season)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrSeasonNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("querying current season: %w", err)
	}

	if r.redis != nil {
		if err := r.redis.Set(ctx, currentSeasonCacheKey, season, r.ttl).Err(); err != nil {
			r.logger.Warnw("Failed to cache current season", "season", season, "error", err)
		}
	}
	return season, nil
}

// SeasonWindow returns the first and last timestamps of a season.
func (r *seasonResolver) SeasonWindow(ctx context.Context, season int64) (*models.SeasonWindow, error) {
	w := &models.SeasonWindow{}
	err := r.pg.QueryRow(ctx,
		"SELECT season, season_start, season_end FROM seasons WHERE season = $1",
		season,
	).Scan(&w.Season, &w.Start, &w.End)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying season %d: %w", season, err)
	}
	return w, nil
}
