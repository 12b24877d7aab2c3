package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlr-stats/stats-api/internal/logic"
)

// GetCurrentSeason returns the season the "current" token resolves to
// @Summary Current Season
// @Tags Seasons
// @Produce json
// @Success 200 {object} models.SeasonWindow
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/seasons/current [get]
func (h *Handler) GetCurrentSeason(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	season, err := h.seasons.CurrentSeason(ctx)
	if err != nil {
		h.serviceError(w, err, "current season")
		return
	}

	window, err := h.seasons.SeasonWindow(ctx, season)
	if err != nil {
		h.serviceError(w, err, "season window")
		return
	}
	h.jsonResponse(w, http.StatusOK, window)
}

// GetSeasonWindow returns the start and end of a season
// @Summary Season Window
// @Tags Seasons
// @Produce json
// @Param season path int true "Season"
// @Success 200 {object} models.SeasonWindow
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/seasons/{season} [get]
func (h *Handler) GetSeasonWindow(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "season")
	if token == "current" {
		h.GetCurrentSeason(w, r)
		return
	}

	season, _, err := logic.ParseSeasonToken(token)
	if err != nil || season == nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid season: "+token)
		return
	}

	window, err := h.seasons.SeasonWindow(r.Context(), *season)
	if err != nil {
		h.serviceError(w, err, "season window")
		return
	}
	h.jsonResponse(w, http.StatusOK, window)
}
