package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mlr-stats/stats-api/internal/logic"
	"github.com/mlr-stats/stats-api/internal/models"
)

// GetStatLeaders returns the season leaders of one or more stat groups
// @Summary Stat Leaders
// @Description Ranked leaders per stat category, one entry per requested group in request order
// @Tags Stats
// @Produce json
// @Param group query string true "Comma separated stat groups (hitting, pitching)"
// @Param season query string false "Season number or 'current'"
// @Param type query string false "Query type" default(season)
// @Success 200 {object} map[string][]models.StatLeadersGroup "leagueLeaders"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /api/v1/stats/leaders [get]
func (h *Handler) GetStatLeaders(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	q := r.URL.Query()
	req := models.StatLeadersRequest{
		Group:  q.Get("group"),
		Season: q.Get("season"),
		Type:   q.Get("type"),
	}
	event := &models.QueryEvent{Endpoint: "/api/v1/stats/leaders", Groups: req.Group, Season: req.Season}
	defer h.recordQuery(event, start)

	if err := h.validator.Struct(req); err != nil {
		event.Status = http.StatusBadRequest
		h.errorResponse(w, http.StatusBadRequest, "Missing required parameter: group")
		return
	}

	leaders, err := h.stats.StatLeaders(r.Context(), logic.StatLeadersParams{
		Group:  req.Group,
		Season: req.Season,
		Type:   req.Type,
	})
	if err != nil {
		event.Status = h.serviceError(w, err, "stat leaders")
		return
	}

	for _, g := range leaders {
		for _, c := range g.LeaderCategories {
			event.Rows += len(c.Leaders)
		}
	}
	event.Status = http.StatusOK
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"leagueLeaders": leaders,
	})
}

// GetPlayerStats returns player stat splits for one or more stat groups
// @Summary Player Stats
// @Description Season splits read from the batting or pitching read-models, with base running stats merged into hitting lines
// @Tags Stats
// @Produce json
// @Param group query string true "Comma separated stat groups (hitting, pitching)"
// @Param fields query string false "Comma separated stat columns to return"
// @Param gameType query string false "R (regular season) or P (postseason)" default(R)
// @Param season query string false "Season number or 'current'"
// @Param playerId query int false "Player filter"
// @Param teamId query int false "Team filter"
// @Param sortStat query string false "Stat column to sort by"
// @Param order query string false "asc or desc" default(desc)
// @Param limit query int false "Maximum splits per group"
// @Param type query string false "Query type" default(season)
// @Success 200 {object} map[string][]models.PlayerStatsGroup "stats"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /api/v1/stats/players [get]
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	q := r.URL.Query()
	event := &models.QueryEvent{Endpoint: "/api/v1/stats/players", Groups: q.Get("group"), Season: q.Get("season")}
	defer h.recordQuery(event, start)

	req, err := parsePlayerStatsRequest(q)
	if err == nil {
		err = h.validator.Struct(req)
	}
	if err == nil && h.maxLimit > 0 && req.Limit > h.maxLimit {
		err = fmt.Errorf("limit must not exceed %d", h.maxLimit)
	}
	if err != nil {
		event.Status = http.StatusBadRequest
		h.errorResponse(w, http.StatusBadRequest, "Invalid parameters: "+err.Error())
		return
	}

	stats, err := h.stats.PlayerStats(r.Context(), logic.PlayerStatsParams{
		Fields:   req.Fields,
		GameType: req.GameType,
		Group:    req.Group,
		Limit:    req.Limit,
		Order:    req.Order,
		PlayerID: req.PlayerID,
		Season:   req.Season,
		SortStat: req.SortStat,
		TeamID:   req.TeamID,
		Type:     req.Type,
	})
	if err != nil {
		event.Status = h.serviceError(w, err, "player stats")
		return
	}

	for _, g := range stats {
		event.Rows += g.TotalSplits
	}
	event.Status = http.StatusOK
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"stats": stats,
	})
}

// parsePlayerStatsRequest reads the query string. Numeric parameters that do
// not parse are reported by name.
func parsePlayerStatsRequest(q map[string][]string) (models.PlayerStatsRequest, error) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req := models.PlayerStatsRequest{
		Fields:   splitList(get("fields")),
		GameType: get("gameType"),
		Group:    get("group"),
		Order:    get("order"),
		Season:   get("season"),
		SortStat: get("sortStat"),
		Type:     get("type"),
	}

	if s := get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return req, fmt.Errorf("limit must be an integer")
		}
		req.Limit = n
	}

	var err error
	if req.PlayerID, err = optionalID(get("playerId"), "playerId"); err != nil {
		return req, err
	}
	if req.TeamID, err = optionalID(get("teamId"), "teamId"); err != nil {
		return req, err
	}
	return req, nil
}

// splitList splits a comma separated list, dropping blanks. An empty input
// yields nil so no field restriction applies.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optionalID(s, name string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// recordQuery hands the finished request to the analytics queue. A full
// queue drops the event.
func (h *Handler) recordQuery(event *models.QueryEvent, start time.Time) {
	if h.queue == nil {
		return
	}
	event.Timestamp = start.UTC()
	event.DurationMS = float64(h.now().Sub(start).Microseconds()) / 1000
	if !h.queue.Enqueue(event) {
		h.logger.Debugw("Query event dropped", "endpoint", event.Endpoint)
	}
}
