package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"geo-pricing-service/internal/domain"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, msg string) {
	writeJSON(w, r, logger, status, map[string]string{"error": msg})
}

// visitorFromRequest collects detection inputs. The IP is the first
// X-Forwarded-For hop when the service sits behind a proxy. The timezone is
// reported by the page itself via ?tz=, an X-Timezone header, or a tz cookie.
func visitorFromRequest(r *http.Request) domain.Visitor {
	var v domain.Visitor

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		v.IP = strings.TrimSpace(strings.Split(xff, ",")[0])
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		v.IP = host
	}

	switch {
	case r.URL.Query().Get("tz") != "":
		v.TimeZone = r.URL.Query().Get("tz")
	case r.Header.Get("X-Timezone") != "":
		v.TimeZone = r.Header.Get("X-Timezone")
	default:
		if c, err := r.Cookie("tz"); err == nil {
			v.TimeZone = c.Value
		}
	}

	return v
}
