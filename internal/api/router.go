package api

import (
	"io/fs"
	"net/http"
	"time"

	"geo-pricing-service/internal/api/handlers"
	"geo-pricing-service/internal/services"

	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(conv *services.Converter, site fs.FS, logger *zap.Logger, now func() time.Time) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}

	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Converter: conv, Logger: logger}
	priceHandler := &handlers.PriceHandler{Converter: conv, Logger: logger}
	pageHandler := handlers.NewPageHandler(conv, site, logger, now)

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/api/prices", priceHandler.Preview)
	mux.Handle("/", pageHandler)

	return requestIDMiddleware(loggingMiddleware(logger, mux))
}
