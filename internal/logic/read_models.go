package logic

import (
	"fmt"

	"github.com/mlr-stats/stats-api/internal/models"
)

// ReadModel is a player stats view together with its optional running stats relation.
type ReadModel struct {
	Group    models.StatGroup
	GameType models.GameType
	View     string
	// RunningView is empty when the view has no running stats relation.
	RunningView string
}

// HasRunningStats reports whether base running fields live in a related view.
func (m ReadModel) HasRunningStats() bool {
	return m.RunningView != ""
}

// RunningFields returns the field names redirected to the running stats relation.
func (m ReadModel) RunningFields() []string {
	if !m.HasRunningStats() {
		return nil
	}
	return models.BaseRunningFields
}

// RunningColumns returns every stat column of the running stats relation.
func (m ReadModel) RunningColumns() []string {
	if !m.HasRunningStats() {
		return nil
	}
	return models.RunningStatsColumns
}

// ResolveReadModel picks the view serving a (group, game type) pair for season queries.
// An empty game type means regular season.
func ResolveReadModel(group models.StatGroup, gameType string) (ReadModel, error) {
	gt, err := ParseGameType(gameType)
	if err != nil {
		return ReadModel{}, &UnsupportedValueError{
			Param:  "group",
			Value:  string(group),
			Detail: fmt.Sprintf("gameType %s", gameType),
		}
	}

	switch group {
	case models.StatGroupHitting:
		switch gt {
		case models.GameTypeRegular:
			return ReadModel{group, gt, "player_batting_stats_season", "player_running_stats_season"}, nil
		case models.GameTypePostseason:
			return ReadModel{group, gt, "player_batting_stats_postseason", "player_running_stats_postseason"}, nil
		}
	case models.StatGroupPitching:
		switch gt {
		case models.GameTypeRegular:
			return ReadModel{group, gt, "player_pitching_stats_season", ""}, nil
		case models.GameTypePostseason:
			return ReadModel{group, gt, "player_pitching_stats_postseason", ""}, nil
		}
	}

	return ReadModel{}, &UnsupportedValueError{Param: "group", Value: string(group)}
}

// LeaderboardRoutine returns the set returning function ranking season leaders of a group.
func LeaderboardRoutine(group models.StatGroup) (string, error) {
	switch group {
	case models.StatGroupHitting:
		return "ref_leaderboard_season_batting", nil
	case models.StatGroupPitching:
		return "ref_leaderboard_season_pitching", nil
	}
	return "", &UnsupportedValueError{Param: "group", Value: string(group)}
}
