package logic

import (
	"slices"
	"sort"

	"github.com/mlr-stats/stats-api/internal/models"
)

// FieldSelection is the set of columns to read for a player stats query.
// Fields are read-model columns, RunningStats are columns of the running stats
// relation and Team are columns of the team relation.
type FieldSelection struct {
	Fields       map[string]bool
	RunningStats map[string]bool
	Team         map[string]bool
}

// BuildFieldSelection turns a requested field list into a selection. A nil field
// list returns nil, which selects every column and relation.
//
// Player identity, season and the team attributes are always selected. Names in
// runningFields are redirected to the running stats relation.
func BuildFieldSelection(fields []string, runningFields []string) *FieldSelection {
	if fields == nil {
		return nil
	}

	sel := &FieldSelection{
		Fields: map[string]bool{
			"player_id":   true,
			"player_name": true,
			"season":      true,
		},
		RunningStats: map[string]bool{},
		Team:         make(map[string]bool, len(models.TeamFields)),
	}
	for _, f := range models.TeamFields {
		sel.Team[f] = true
	}

	for _, f := range fields {
		if slices.Contains(runningFields, f) {
			sel.RunningStats[f] = true
		} else {
			sel.Fields[f] = true
		}
	}
	return sel
}

// Columns returns the selected read-model columns in a stable order.
func (s *FieldSelection) Columns() []string {
	return sortedKeys(s.Fields)
}

// RunningColumns returns the selected running stats columns in a stable order.
func (s *FieldSelection) RunningColumns() []string {
	return sortedKeys(s.RunningStats)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
