package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bonusrates/internal/domain"

	"github.com/sirupsen/logrus"
)

const maxUpdateBodyBytes = 64 << 10

type UpdateRatesRequest struct {
	Rates json.RawMessage `json:"rates" swaggertype:"object,number" example:"Level I:0.0001"`
}

type UpdateRatesResponse struct {
	Message string `json:"message" example:"Bonus rates updated successfully"`
}

// UpdateRates godoc
// @Summary Update bonus rates
// @Description Sets the rate of every listed tier. Unknown tiers are ignored. Keys are applied independently, a failure leaves the other keys applied.
// @Tags BonusRates
// @Accept json
// @Produce json
// @Param request body UpdateRatesRequest true "Rates by tier name"
// @Success 200 {object} UpdateRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/bonus-rates [post]
func (h *Handler) UpdateRates(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpdateBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req UpdateRatesRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.KindInvalidInput, "invalid request body")
		return
	}

	msg, err := h.service.UpdateRates(r.Context(), req.Rates)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, domain.KindInvalidInput, err.Error())
		case errors.Is(err, domain.ErrPartialUpdate):
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "UpdateRates"}).Error("bonus rates were partially updated")
			writeError(w, http.StatusInternalServerError, domain.KindPartialUpdate, "failed to update all bonus rates")
		default:
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "UpdateRates"}).Error("bonus rates weren't updated")
			writeError(w, http.StatusInternalServerError, domain.ErrorKind(err), "failed to update bonus rates")
		}
		return
	}

	writeJSON(w, http.StatusOK, UpdateRatesResponse{Message: msg})
}
