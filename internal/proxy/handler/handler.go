package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// Upstream is the outbound surface of the exchange-rate provider. Both
// calls return the provider's JSON body verbatim so handlers can relay it
// without re-encoding.
type Upstream interface {
	SupportedCodes(ctx context.Context) (json.RawMessage, error)
	LatestRates(ctx context.Context, base string) (json.RawMessage, error)
}

type Handler struct {
	upstream Upstream
}

func NewHandler(upstream Upstream) *Handler {
	return &Handler{upstream: upstream}
}

type ErrorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string, details json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorMsg,
		Details: details,
	})
}

func writeRaw(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
