package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mlr-stats/stats-api/internal/logic"
)

const readyCheckTimeout = 2 * time.Second

// Health check endpoint
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
// @Summary Readiness probe
// @Description Pings Postgres, Redis and, when analytics are enabled, ClickHouse
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	probes := map[string]func(context.Context) error{}
	if h.pg != nil {
		probes["postgres"] = h.pg.Ping
	}
	if h.redis != nil {
		probes["redis"] = func(ctx context.Context) error { return h.redis.Ping(ctx).Err() }
	}
	if h.ch != nil {
		probes["clickhouse"] = h.ch.Ping
	}

	var mu sync.Mutex
	checks := make(map[string]bool, len(probes))
	var g errgroup.Group
	for name, probe := range probes {
		g.Go(func() error {
			err := probe(ctx)
			if err != nil {
				h.logger.Warnw("Readiness check failed", "dependency", name, "error", err)
			}
			mu.Lock()
			checks[name] = err == nil
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	body := map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	}
	if h.queue != nil {
		body["queueDepth"] = h.queue.QueueDepth()
	}
	h.jsonResponse(w, status, body)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warnw("Failed to encode response", "error", err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a stats or season error onto an HTTP status and writes it.
// It returns the status written.
func (h *Handler) serviceError(w http.ResponseWriter, err error, op string) int {
	var unsupported *logic.UnsupportedValueError
	switch {
	case errors.As(err, &unsupported):
		h.errorResponse(w, http.StatusBadRequest, unsupported.Error())
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrInvalidSeason):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrSeasonNotFound):
		h.errorResponse(w, http.StatusNotFound, "Season not found")
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		// The timeout middleware writes the 504 once the handler returns
		h.logger.Warnw("Request timed out", "op", op, "error", err)
		return http.StatusGatewayTimeout
	}
	h.logger.Errorw("Request failed", "op", op, "error", err)
	h.errorResponse(w, http.StatusInternalServerError, "Internal server error")
	return http.StatusInternalServerError
}
