package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRedis struct {
	values  map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.setKeys = append(m.setKeys, key)
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	return redis.NewStatusResult("OK", nil)
}

func seasonPool(season int64, calls *int) *MockPgPool {
	return &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			*calls++
			return &MockPgRow{values: []any{season}}
		},
	}
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		name        string
		redis       *MockRedis
		wantSeason  int64
		wantPgCalls int
		wantCached  bool
	}{
		{
			name:        "Cache hit",
			redis:       &MockRedis{values: map[string]string{currentSeasonCacheKey: "2024"}},
			wantSeason:  2024,
			wantPgCalls: 0,
		},
		{
			name:        "Cache miss",
			redis:       &MockRedis{values: map[string]string{}},
			wantSeason:  2023,
			wantPgCalls: 1,
			wantCached:  true,
		},
		{
			name:        "Malformed cache entry",
			redis:       &MockRedis{values: map[string]string{currentSeasonCacheKey: "soon"}},
			wantSeason:  2023,
			wantPgCalls: 1,
			wantCached:  true,
		},
		{
			name:        "Redis down",
			redis:       &MockRedis{getErr: errors.New("dial tcp: refused"), setErr: errors.New("dial tcp: refused")},
			wantSeason:  2023,
			wantPgCalls: 1,
			wantCached:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			resolver := NewSeasonResolver(SeasonResolverConfig{
				Postgres: seasonPool(2023, &calls),
				Redis:    tt.redis,
			})

			season, err := resolver.CurrentSeason(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeason, season)
			assert.Equal(t, tt.wantPgCalls, calls)
			if tt.wantCached {
				assert.Equal(t, []string{currentSeasonCacheKey}, tt.redis.setKeys)
			} else {
				assert.Empty(t, tt.redis.setKeys)
			}
		})
	}
}

func TestCurrentSeason_WithoutRedis(t *testing.T) {
	calls := 0
	resolver := NewSeasonResolver(SeasonResolverConfig{Postgres: seasonPool(2019, &calls)})

	season, err := resolver.CurrentSeason(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2019), season)
	assert.Equal(t, 1, calls)
}

func TestCurrentSeason_NotFound(t *testing.T) {
	resolver := NewSeasonResolver(SeasonResolverConfig{Postgres: &MockPgPool{}})

	_, err := resolver.CurrentSeason(context.Background())
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}

func TestSeasonWindow(t *testing.T) {
	start := time.Date(2023, 3, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)

	var gotArgs []any
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			gotArgs = args
			return &MockPgRow{values: []any{int64(2023), start, end}}
		},
	}
	resolver := NewSeasonResolver(SeasonResolverConfig{Postgres: pg})

	w, err := resolver.SeasonWindow(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2023)}, gotArgs)
	assert.Equal(t, int64(2023), w.Season)
	assert.True(t, start.Equal(w.Start))
	assert.True(t, end.Equal(w.End))

	_, err = NewSeasonResolver(SeasonResolverConfig{Postgres: &MockPgPool{}}).SeasonWindow(context.Background(), 1850)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}
