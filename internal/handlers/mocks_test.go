package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mlr-stats/stats-api/internal/logic"
	"github.com/mlr-stats/stats-api/internal/models"
)

// MockStatsService
type MockStatsService struct {
	StatLeadersFunc func(ctx context.Context, params logic.StatLeadersParams) ([]models.StatLeadersGroup, error)
	PlayerStatsFunc func(ctx context.Context, params logic.PlayerStatsParams) ([]models.PlayerStatsGroup, error)
}

func (m *MockStatsService) StatLeaders(ctx context.Context, params logic.StatLeadersParams) ([]models.StatLeadersGroup, error) {
	if m.StatLeadersFunc != nil {
		return m.StatLeadersFunc(ctx, params)
	}
	return []models.StatLeadersGroup{}, nil
}

func (m *MockStatsService) PlayerStats(ctx context.Context, params logic.PlayerStatsParams) ([]models.PlayerStatsGroup, error) {
	if m.PlayerStatsFunc != nil {
		return m.PlayerStatsFunc(ctx, params)
	}
	return []models.PlayerStatsGroup{}, nil
}

// MockSeasonResolver
type MockSeasonResolver struct {
	CurrentSeasonFunc func(ctx context.Context) (int64, error)
	SeasonWindowFunc  func(ctx context.Context, season int64) (*models.SeasonWindow, error)
}

func (m *MockSeasonResolver) CurrentSeason(ctx context.Context) (int64, error) {
	if m.CurrentSeasonFunc != nil {
		return m.CurrentSeasonFunc(ctx)
	}
	return 2024, nil
}

func (m *MockSeasonResolver) SeasonWindow(ctx context.Context, season int64) (*models.SeasonWindow, error) {
	if m.SeasonWindowFunc != nil {
		return m.SeasonWindowFunc(ctx, season)
	}
	return &models.SeasonWindow{
		Season: season,
		Start:  time.Date(int(season), 3, 28, 0, 0, 0, 0, time.UTC),
		End:    time.Date(int(season), 11, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

// MockQueryEventQueue
type MockQueryEventQueue struct {
	Events []*models.QueryEvent
	Full   bool
}

func (m *MockQueryEventQueue) Enqueue(event *models.QueryEvent) bool {
	if m.Full {
		return false
	}
	m.Events = append(m.Events, event)
	return true
}

func (m *MockQueryEventQueue) QueueDepth() int { return len(m.Events) }

type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

type MockRedisPinger struct {
	Err error
}

func (m *MockRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	if m.Err != nil {
		return redis.NewStatusResult("", m.Err)
	}
	return redis.NewStatusResult("PONG", nil)
}

var errDB = errors.New("db error")

func newTestHandler(stats logic.StatsService, seasons logic.SeasonResolver, queue QueryEventQueue) *Handler {
	h := &Handler{
		logger:    zap.NewNop().Sugar(),
		validator: validator.New(),
		stats:     stats,
		seasons:   seasons,
		maxLimit:  500,
		now:       time.Now,
	}
	if queue != nil {
		h.queue = queue
	}
	return h
}
