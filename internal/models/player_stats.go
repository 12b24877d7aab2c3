package models

import "time"

// StatGroup selects the family of statistics (and therefore the read-model) to query.
type StatGroup string

const (
	StatGroupHitting  StatGroup = "hitting"
	StatGroupPitching StatGroup = "pitching"
)

// GameType distinguishes regular season from postseason splits.
type GameType string

const (
	GameTypeRegular    GameType = "R"
	GameTypePostseason GameType = "P"
)

// QueryType is the aggregation window of a stats query. Only single seasons are served today.
type QueryType string

const (
	QueryTypeSeason QueryType = "season"
)

// SortOrder is the direction applied to the caller's sort stat.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// CurrentSeasonToken is the season value that is resolved to the active season before querying.
const CurrentSeasonToken = "current"

// BaseRunningFields are stored in the one-to-one running stats relation of hitting read-models.
// Every flattened hitting split carries all of them.
var BaseRunningFields = []string{"stolen_bases", "caught_stealing", "runs"}

// RunningStatsColumns are the stat columns of the running stats relation read when no
// field list is given.
var RunningStatsColumns = []string{"stolen_bases", "caught_stealing", "runs", "pickoffs"}

// TeamFields is the fixed set of team attributes returned with every split.
var TeamFields = []string{
	"team_id",
	"location",
	"nickname",
	"full_name",
	"team_abbreviation",
	"url_slug",
	"current_team_status",
	"valid_from",
	"valid_until",
	"gameday_from",
	"season_from",
	"division",
	"division_id",
	"league",
	"league_id",
	"tournament_name",
	"modifications",
	"team_main_color",
	"team_secondary_color",
	"team_slogan",
	"team_emoji",
}

// StatLine is the flat stat payload of a split, keyed by column name.
type StatLine map[string]any

// Team is a team row as stored, keyed by column name.
type Team map[string]any

// RunningStatsRelation is the state of a record's running stats relation.
// A nil relation means it was not requested for this read-model.
type RunningStatsRelation interface {
	runningStats()
}

// RunningStatsPresent carries the selected running stat columns of the related row.
type RunningStatsPresent struct {
	Stats StatLine
}

// RunningStatsAbsent marks a requested relation that had no row for the player and season.
type RunningStatsAbsent struct{}

func (RunningStatsPresent) runningStats() {}
func (RunningStatsAbsent) runningStats()  {}

// PlayerStatRecord is one row of a player stats read-model with identifying columns split out.
type PlayerStatRecord struct {
	PlayerID       int64
	PlayerName     string
	TeamID         *int64
	TeamValidFrom  *time.Time
	TeamValidUntil *time.Time
	Season         int64

	Team    Team
	Stats   StatLine
	Running RunningStatsRelation
}

// PlayerRef identifies the player a split belongs to.
type PlayerRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// Split is one season of statistics for a player.
type Split struct {
	Season int64     `json:"season"`
	Stat   StatLine  `json:"stat"`
	Player PlayerRef `json:"player"`
	Team   Team      `json:"team"`
}

// PlayerStatsGroup is the response for a single stat group of a player stats query.
type PlayerStatsGroup struct {
	Group       StatGroup `json:"group"`
	Type        QueryType `json:"type"`
	TotalSplits int       `json:"totalSplits"`
	Splits      []Split   `json:"splits"`
}

// SeasonWindow holds the first and last timestamps that belong to a season.
type SeasonWindow struct {
	Season int64     `json:"season"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
