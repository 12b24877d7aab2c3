package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mlr-stats/stats-api/internal/models"
)

type statsRepository struct {
	pg PgPool
}

// NewStatsRepository returns a StatsRepository reading the Postgres read-models.
func NewStatsRepository(pg PgPool) StatsRepository {
	return &statsRepository{pg: pg}
}

// LeaderboardRows runs the ranking routine of a group for one season.
func (r *statsRepository) LeaderboardRows(ctx context.Context, group models.StatGroup, season *int64) ([]models.LeaderboardRow, error) {
	query, args, err := BuildLeaderboardQuery(group, season)
	if err != nil {
		return nil, err
	}

	rows, err := r.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s leaderboard: %w", group, err)
	}
	raw, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scanning %s leaderboard: %w", group, err)
	}

	result := make([]models.LeaderboardRow, 0, len(raw))
	for _, row := range raw {
		result = append(result, decodeLeaderboardRow(row))
	}
	return result, nil
}

// FindPlayerStats reads a player stats read-model.
func (r *statsRepository) FindPlayerStats(ctx context.Context, q PlayerStatsQuery) ([]models.PlayerStatRecord, error) {
	query, args, err := BuildPlayerStatsQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.pg.Query(ctx, query, args...)
	if err != nil {
		if uv := undefinedColumn(err, q); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("querying %s: %w", q.Model.View, err)
	}
	raw, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		if uv := undefinedColumn(err, q); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("scanning %s: %w", q.Model.View, err)
	}

	records := make([]models.PlayerStatRecord, 0, len(raw))
	for _, row := range raw {
		records = append(records, decodePlayerStatRow(row))
	}
	return records, nil
}

// undefinedColumn turns an undefined_column error into an UnsupportedValueError
// naming the requested field or sort stat. Other errors return nil.
func undefinedColumn(err error, q PlayerStatsQuery) *UnsupportedValueError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "42703" {
		return nil
	}

	// Postgres reports `column s.name does not exist` or `column "name" does not exist`
	name := strings.TrimPrefix(pgErr.Message, "column ")
	name = strings.TrimSuffix(name, " does not exist")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Trim(name, `"`)

	for _, term := range q.OrderBy {
		if term.Field == name {
			return &UnsupportedValueError{Param: "sortStat", Value: name}
		}
	}
	return &UnsupportedValueError{Param: "fields", Value: name}
}

func decodeLeaderboardRow(row map[string]any) models.LeaderboardRow {
	models.NormalizeRow(row)
	stat := ""
	if v, ok := row["stat"]; ok && v != nil {
		stat = fmt.Sprint(v)
	}
	delete(row, "stat")
	return models.LeaderboardRow{Stat: stat, Leader: row}
}

// decodePlayerStatRow splits a flat result row into identity, team, running
// stats relation and the remaining stat columns.
func decodePlayerStatRow(row map[string]any) models.PlayerStatRecord {
	models.NormalizeRow(row)

	rec := models.PlayerStatRecord{
		PlayerID:       int64Value(row["player_id"]),
		PlayerName:     stringValue(row["player_name"]),
		TeamID:         int64Ptr(row["team_id"]),
		TeamValidFrom:  timePtr(row["team_valid_from"]),
		TeamValidUntil: timePtr(row["team_valid_until"]),
		Season:         int64Value(row["season"]),
		Stats:          models.StatLine{},
	}

	team := models.Team{}
	running := models.StatLine{}
	exists, hasRunning := row[runningExistsColumn]

	for k, v := range row {
		switch {
		case k == runningExistsColumn:
		case strings.HasPrefix(k, teamColumnPrefix):
			team[strings.TrimPrefix(k, teamColumnPrefix)] = v
		case strings.HasPrefix(k, runningColumnPrefix):
			running[strings.TrimPrefix(k, runningColumnPrefix)] = v
		default:
			switch k {
			case "player_id", "player_name", "team_id", "team_valid_from", "team_valid_until", "season":
			default:
				rec.Stats[k] = v
			}
		}
	}

	if team["team_id"] != nil {
		rec.Team = team
	}

	if hasRunning {
		if present, _ := exists.(bool); present {
			rec.Running = models.RunningStatsPresent{Stats: running}
		} else {
			rec.Running = models.RunningStatsAbsent{}
		}
	}
	return rec
}

func int64Value(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func int64Ptr(v any) *int64 {
	if v == nil {
		return nil
	}
	n := int64Value(v)
	return &n
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func timePtr(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}
