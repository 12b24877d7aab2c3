package models

// LeaderboardRow is a single ranked row produced by a leaderboard routine.
// Stat is the category tag the row is grouped under.
type LeaderboardRow struct {
	Stat   string
	Leader map[string]any
}

// LeaderCategory groups the leaders of one stat category in ranking order.
type LeaderCategory struct {
	LeaderCategory string           `json:"leaderCategory"`
	Leaders        []map[string]any `json:"leaders"`
}

// StatLeadersGroup is the leaderboard response for one stat group.
type StatLeadersGroup struct {
	StatGroup        StatGroup        `json:"statGroup"`
	LeaderCategories []LeaderCategory `json:"leaderCategories"`
}
