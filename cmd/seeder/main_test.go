package main

import "testing"

func TestBuildIsDeterministic(t *testing.T) {
	a := newSeed(2022, 2023, 7).build()
	b := newSeed(2022, 2023, 7).build()

	if a.Len() != b.Len() {
		t.Fatalf("batch sizes differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.QueuedQueries {
		qa, qb := a.QueuedQueries[i], b.QueuedQueries[i]
		if qa.SQL != qb.SQL || len(qa.Arguments) != len(qb.Arguments) {
			t.Fatalf("query %d differs", i)
		}
	}
}

func TestBuildCoversEveryTable(t *testing.T) {
	batch := newSeed(2023, 2023, 1).build()

	counts := map[string]int{}
	for _, q := range batch.QueuedQueries {
		for _, table := range []string{
			"seasons", "teams",
			`"player_batting_stats_season"`, `"player_batting_stats_postseason"`,
			`"player_pitching_stats_season"`, `"player_pitching_stats_postseason"`,
			`"player_running_stats_season"`,
		} {
			if containsInsert(q.SQL, table) {
				counts[table]++
			}
		}
	}

	if counts["seasons"] != 1 {
		t.Errorf("seasons inserts = %d, want 1", counts["seasons"])
	}
	if counts["teams"] != len(teamNames) {
		t.Errorf("teams inserts = %d, want %d", counts["teams"], len(teamNames))
	}
	hitters := len(teamNames) * (playersPerTeam - pitchersShare)
	if counts[`"player_batting_stats_season"`] != hitters {
		t.Errorf("batting inserts = %d, want %d", counts[`"player_batting_stats_season"`], hitters)
	}
	if counts[`"player_running_stats_season"`] > hitters {
		t.Errorf("more running rows than hitters")
	}
}

func containsInsert(sql, table string) bool {
	prefix := "INSERT INTO " + table + " "
	return len(sql) >= len(prefix) && sql[:len(prefix)] == prefix
}

func TestRatioAndSlug(t *testing.T) {
	if got := ratio(1, 3); got != 0.333 {
		t.Errorf("ratio(1, 3) = %v", got)
	}
	if got := ratio(1, 0); got != 0 {
		t.Errorf("ratio(1, 0) = %v", got)
	}
	if got := slug("Harbor City Comets"); got != "harbor-city-comets" {
		t.Errorf("slug = %q", got)
	}
}
