package models

import (
	"time"

	"github.com/google/uuid"
)

// StatLeadersRequest holds the query parameters of the leaderboard endpoint.
type StatLeadersRequest struct {
	Group  string `json:"group" validate:"required"`
	Season string `json:"season"`
	Type   string `json:"type"`
}

// PlayerStatsRequest holds the query parameters of the player stats endpoint.
// Fields is nil when the caller did not restrict the selection.
type PlayerStatsRequest struct {
	Fields   []string `json:"fields" validate:"omitempty,dive,required"`
	GameType string   `json:"gameType"`
	Group    string   `json:"group" validate:"required"`
	Limit    int      `json:"limit" validate:"gte=0"`
	Order    string   `json:"order"`
	PlayerID *int64   `json:"playerId" validate:"omitempty,gt=0"`
	Season   string   `json:"season"`
	SortStat string   `json:"sortStat"`
	TeamID   *int64   `json:"teamId" validate:"omitempty,gt=0"`
	Type     string   `json:"type"`
}

// QueryEvent is an analytics record describing one served stats request.
type QueryEvent struct {
	ID         uuid.UUID
	Endpoint   string
	Groups     string
	Season     string
	Status     int
	Rows       int
	DurationMS float64
	Timestamp  time.Time
}
