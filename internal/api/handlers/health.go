package handlers

import (
	"net/http"

	"geo-pricing-service/internal/api/dto"
	"geo-pricing-service/internal/services"

	"go.uber.org/zap"
)

// HealthHandler reports liveness plus the pipeline's static wiring.
type HealthHandler struct {
	Converter *services.Converter
	Logger    *zap.Logger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, h.Logger, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, h.Logger, http.StatusOK, dto.HealthResponse{
		Status:     "ok",
		Strategies: h.Converter.Strategies(),
		Countries:  h.Converter.Countries(),
	})
}
