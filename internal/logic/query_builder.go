package logic

import (
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mlr-stats/stats-api/internal/models"
)

// Column aliases used to carry relation columns through a flat result row
const (
	teamColumnPrefix    = "team__"
	runningColumnPrefix = "running__"
	runningExistsColumn = "running__exists"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// OrderTerm is one ORDER BY key.
type OrderTerm struct {
	Field string
	Order models.SortOrder
}

// PlayerStatsFilter holds equality filters. Nil values do not filter.
type PlayerStatsFilter struct {
	Season   *int64
	PlayerID *int64
	TeamID   *int64
}

// PlayerStatsQuery holds everything needed to read one read-model.
type PlayerStatsQuery struct {
	Model ReadModel
	// Selection is nil to read every column and relation.
	Selection *FieldSelection
	Filter    PlayerStatsFilter
	// Limit of 0 returns every matching row.
	Limit   int
	OrderBy []OrderTerm
}

// BuildPlayerStatsQuery constructs a safe Postgres query for a read-model.
// Field and sort names are validated as plain identifiers and quoted.
func BuildPlayerStatsQuery(q PlayerStatsQuery) (string, []interface{}, error) {
	if q.Model.View == "" {
		return "", nil, fmt.Errorf("read model has no view")
	}

	// 1. Read-model columns
	var columns []string
	if q.Selection == nil {
		columns = append(columns, "s.*")
	} else {
		for _, c := range q.Selection.Columns() {
			if err := validateIdentifier("fields", c); err != nil {
				return "", nil, err
			}
			columns = append(columns, aliased("s", c, c))
		}
	}

	// 2. Team relation
	teamColumns := models.TeamFields
	if q.Selection != nil {
		teamColumns = sortedKeys(q.Selection.Team)
	}
	for _, c := range teamColumns {
		columns = append(columns, aliased("t", c, teamColumnPrefix+c))
	}

	// 3. Running stats relation
	var runningColumns []string
	if q.Model.HasRunningStats() {
		if q.Selection == nil {
			runningColumns = q.Model.RunningColumns()
		} else {
			runningColumns = q.Selection.RunningColumns()
		}
	}
	if len(runningColumns) > 0 {
		columns = append(columns, fmt.Sprintf("(r.player_id IS NOT NULL) AS %s", quote(runningExistsColumn)))
		for _, c := range runningColumns {
			if err := validateIdentifier("fields", c); err != nil {
				return "", nil, err
			}
			columns = append(columns, aliased("r", c, runningColumnPrefix+c))
		}
	}

	// 4. Order
	joinRunning := len(runningColumns) > 0
	orderBy := make([]string, 0, len(q.OrderBy))
	for _, term := range q.OrderBy {
		if err := validateIdentifier("sortStat", term.Field); err != nil {
			return "", nil, err
		}
		dir := "DESC"
		if term.Order == models.SortAsc {
			dir = "ASC"
		}
		expr := pgx.Identifier{"s", term.Field}.Sanitize()
		if slices.Contains(q.Model.RunningFields(), term.Field) {
			expr = fmt.Sprintf("COALESCE(%s, 0)", pgx.Identifier{"r", term.Field}.Sanitize())
			joinRunning = true
		}
		orderBy = append(orderBy, expr+" "+dir)
	}

	builder := psql.Select(columns...).
		From(quote(q.Model.View) + " AS s").
		LeftJoin("teams AS t ON t.team_id = s.team_id AND t.valid_from IS NOT DISTINCT FROM s.team_valid_from")

	if joinRunning {
		builder = builder.LeftJoin(quote(q.Model.RunningView) + " AS r ON r.player_id = s.player_id AND r.season = s.season")
	}

	// 5. Filters
	if q.Filter.Season != nil {
		builder = builder.Where(sq.Eq{"s.season": *q.Filter.Season})
	}
	if q.Filter.PlayerID != nil {
		builder = builder.Where(sq.Eq{"s.player_id": *q.Filter.PlayerID})
	}
	if q.Filter.TeamID != nil {
		builder = builder.Where(sq.Eq{"s.team_id": *q.Filter.TeamID})
	}

	if len(orderBy) > 0 {
		builder = builder.OrderBy(orderBy...)
	}

	// 6. Limit
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	return builder.ToSql()
}

// BuildLeaderboardQuery returns the call of a group's leaderboard routine.
func BuildLeaderboardQuery(group models.StatGroup, season *int64) (string, []interface{}, error) {
	routine, err := LeaderboardRoutine(group)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT * FROM %s($1)", quote(routine)), []interface{}{season}, nil
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func aliased(table, column, alias string) string {
	return pgx.Identifier{table, column}.Sanitize() + " AS " + quote(alias)
}
