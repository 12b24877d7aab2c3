package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestPostgresMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(Postgres(), "*.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 {
		t.Fatalf("found %d migrations, want 3: %v", len(names), names)
	}

	for _, name := range names {
		content, err := fs.ReadFile(Postgres(), name)
		if err != nil {
			t.Fatal(err)
		}
		s := string(content)
		if !strings.Contains(s, "-- +goose Up") || !strings.Contains(s, "-- +goose Down") {
			t.Errorf("%s is missing goose annotations", name)
		}
		if strings.Count(s, "-- +goose StatementBegin") != strings.Count(s, "-- +goose StatementEnd") {
			t.Errorf("%s has unbalanced statement blocks", name)
		}
	}
}

func TestReadModelsAndRoutinesDefined(t *testing.T) {
	var all strings.Builder
	names, _ := fs.Glob(Postgres(), "*.sql")
	for _, name := range names {
		content, _ := fs.ReadFile(Postgres(), name)
		all.Write(content)
	}
	schema := all.String()

	for _, object := range []string{
		"TABLE seasons",
		"TABLE teams",
		"TABLE player_batting_stats_season",
		"TABLE player_batting_stats_postseason",
		"TABLE player_running_stats_season",
		"TABLE player_running_stats_postseason",
		"TABLE player_pitching_stats_season",
		"TABLE player_pitching_stats_postseason",
		"FUNCTION ref_leaderboard_season_batting",
		"FUNCTION ref_leaderboard_season_pitching",
	} {
		if !strings.Contains(schema, "CREATE "+object) && !strings.Contains(schema, "CREATE OR REPLACE "+object) {
			t.Errorf("schema does not create %s", object)
		}
	}
}

func TestClickHouseStatements(t *testing.T) {
	stmts, err := ClickHouseStatements()
	if err != nil {
		t.Fatal(err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	if !strings.HasPrefix(stmts[0], "CREATE DATABASE") {
		t.Errorf("first statement = %q", stmts[0])
	}
	if !strings.Contains(stmts[1], "stats_api.query_events") {
		t.Errorf("second statement = %q", stmts[1])
	}
}

func TestPitchingReadModelsCarryBaseRunningColumns(t *testing.T) {
	content, err := fs.ReadFile(Postgres(), "00002_stat_read_models.sql")
	if err != nil {
		t.Fatal(err)
	}
	schema := string(content)

	start := strings.Index(schema, "CREATE TABLE player_pitching_stats_season")
	if start < 0 {
		t.Fatal("pitching season table not found")
	}
	table := schema[start:]
	table = table[:strings.Index(table, ");")]

	for _, column := range []string{"stolen_bases", "caught_stealing", "runs"} {
		if !strings.Contains(table, "\n    "+column+" ") {
			t.Errorf("pitching read-model has no %s column", column)
		}
	}
	if !strings.Contains(schema, "CREATE TABLE player_pitching_stats_postseason (LIKE player_pitching_stats_season") {
		t.Error("pitching postseason table does not mirror the season table")
	}
}
