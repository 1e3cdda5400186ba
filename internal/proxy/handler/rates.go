package handler

import (
	"net/http"
	"strings"
)

const defaultBase = "USD"

// GetRates godoc
// @Summary Latest exchange rates
// @Description Relay the upstream rate table for the given base currency verbatim.
// @Tags Proxy
// @Produce json
// @Param base query string false "Base currency code, case-insensitive" default(USD)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("base")))
	if base == "" {
		base = defaultBase
	}

	body, err := h.upstream.LatestRates(r.Context(), base)
	if err != nil {
		h.writeUpstreamError(w, "GetRates", err)
		return
	}
	writeRaw(w, body)
}
