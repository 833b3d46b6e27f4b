package handler

import (
	"net/http"

	"bonusrates/internal/domain"

	"github.com/sirupsen/logrus"
)

// GetRates godoc
// @Summary List bonus rates
// @Description Returns every bonus rate tier as {"<tier>": <rate>} ordered by tier name
// @Tags BonusRates
// @Produce json
// @Success 200 {object} map[string]number
// @Failure 500 {object} errorResponse
// @Router /api/v1/bonus-rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.service.GetRates(r.Context())
	if err != nil {
		msg := "failed to read bonus rates"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRates"}).Error(msg)
		writeError(w, http.StatusInternalServerError, domain.ErrorKind(err), msg)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}
