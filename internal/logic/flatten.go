package logic

import (
	"slices"

	"github.com/mlr-stats/stats-api/internal/models"
)

// MergeRunningStats folds a running stats relation into a stat line.
// A present relation contributes its columns, reading null base running values
// as zero. An absent relation zero-fills every base running field. A nil
// relation leaves the line untouched.
func MergeRunningStats(stat models.StatLine, rel models.RunningStatsRelation) models.StatLine {
	out := make(models.StatLine, len(stat)+len(models.BaseRunningFields))
	for k, v := range stat {
		out[k] = v
	}

	switch r := rel.(type) {
	case models.RunningStatsPresent:
		for k, v := range r.Stats {
			switch k {
			case "player_id", "player_name", "season":
				continue
			}
			if v == nil && slices.Contains(models.BaseRunningFields, k) {
				v = int64(0)
			}
			out[k] = v
		}
	case models.RunningStatsAbsent:
		for _, f := range models.BaseRunningFields {
			out[f] = int64(0)
		}
	}
	return out
}

// ZeroFillBaseRunning sets every missing or null base running field of a stat
// line to zero. It is used for read-models that store those fields as their own
// columns.
func ZeroFillBaseRunning(stat models.StatLine) models.StatLine {
	for _, f := range models.BaseRunningFields {
		if stat[f] == nil {
			stat[f] = int64(0)
		}
	}
	return stat
}

// ToSplit shapes a read-model record into its response split.
func ToSplit(rec models.PlayerStatRecord) models.Split {
	return models.Split{
		Season: rec.Season,
		Stat:   MergeRunningStats(rec.Stats, rec.Running),
		Player: models.PlayerRef{
			ID:       rec.PlayerID,
			FullName: rec.PlayerName,
		},
		Team: rec.Team,
	}
}
