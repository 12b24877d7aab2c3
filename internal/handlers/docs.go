package handlers

import (
	"net/http"

	"github.com/swaggo/swag"
)

// SwaggerDoc serves the registered OpenAPI document
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Errorw("Failed to read API docs", "error", err)
		h.errorResponse(w, http.StatusNotFound, "API docs not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
