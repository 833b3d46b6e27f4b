package handler

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status string    `json:"status" example:"ok"`
	Time   time.Time `json:"time" example:"2025-01-02T15:04:05Z"`
}

// Health godoc
// @Summary Liveness probe
// @Description Reports process liveness and current server time. Does not touch the rate store.
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Time: time.Now().UTC()})
}
