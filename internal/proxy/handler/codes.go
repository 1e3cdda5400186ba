package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"rateproxy/internal/adapters/upstream"
)

// GetCodes godoc
// @Summary Supported currency codes
// @Description Relay the upstream catalog of [code, name] pairs verbatim.
// @Tags Proxy
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /codes [get]
func (h *Handler) GetCodes(w http.ResponseWriter, r *http.Request) {
	body, err := h.upstream.SupportedCodes(r.Context())
	if err != nil {
		h.writeUpstreamError(w, "GetCodes", err)
		return
	}
	writeRaw(w, body)
}

// writeUpstreamError maps upstream failures onto the proxy contract:
// missing credential and transport failures are 500, a non-success
// upstream result is 502 with the upstream body attached as details.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, upstream.ErrMissingAPIKey) {
		writeError(w, http.StatusInternalServerError, upstream.ErrMissingAPIKey.Error(), nil)
		return
	}

	var resErr *upstream.ResultError
	if errors.As(err, &resErr) {
		logrus.WithError(err).WithField("handler", op).Warn("Upstream returned an error result")
		writeError(w, http.StatusBadGateway, "upstream provider returned an error", resErr.Body)
		return
	}

	logrus.WithError(err).WithField("handler", op).Error("Upstream call failed")
	writeError(w, http.StatusInternalServerError, "failed to reach upstream provider", nil)
}
