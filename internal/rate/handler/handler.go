package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"bonusrates/internal/domain"
)

type RateService interface {
	GetRates(ctx context.Context) (domain.RateSheet, error)
	UpdateRates(ctx context.Context, payload json.RawMessage) (string, error)
}

type Handler struct {
	service RateService
}

func NewRateHandler(service RateService) *Handler {
	return &Handler{service: service}
}

type errorResponse struct {
	Error string `json:"error" example:"rates must be an object"`
	Kind  string `json:"kind,omitempty" example:"invalid_input"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, kind string, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
		Kind:  kind,
	})
}
