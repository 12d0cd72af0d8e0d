package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"geo-pricing-service/internal/adapters/page"
	"geo-pricing-service/internal/api/dto"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/services"

	"go.uber.org/zap"
)

const maxPreviewPrices = 50

// PriceHandler previews prices for a country without a page. It backs the
// "simulate another country" control.
type PriceHandler struct {
	Converter *services.Converter
	Logger    *zap.Logger
}

// Preview handles GET /api/prices?usd=1999&usd=49/mo[&country=BD].
func (h *PriceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, h.Logger, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	raw := q["usd"]
	if len(raw) == 0 {
		writeError(w, r, h.Logger, http.StatusBadRequest, "at least one usd amount is required")
		return
	}
	if len(raw) > maxPreviewPrices {
		writeError(w, r, h.Logger, http.StatusBadRequest, fmt.Sprintf("at most %d usd amounts are allowed", maxPreviewPrices))
		return
	}

	elems := make([]domain.PriceElement, 0, len(raw))
	for _, v := range raw {
		elem, err := parsePreviewPrice(v)
		if err != nil {
			writeError(w, r, h.Logger, http.StatusBadRequest, err.Error())
			return
		}
		elems = append(elems, elem)
	}

	board := page.NewMemory(elems...)
	out := h.Converter.NewSession(board).Run(r.Context(), visitorFromRequest(r), q.Get("country"))

	res := dto.PreviewResponse{
		Country:    string(out.Country),
		ResolvedBy: out.ResolvedBy,
		Currency:   string(out.Currency),
		Rate:       out.Rate.String(),
		State:      string(out.State),
		Prices:     make([]dto.PriceResponse, 0, len(elems)),
	}
	for i, d := range board.Displays() {
		res.Prices = append(res.Prices, dto.PriceResponse{
			USD:    elems[i].USD.String(),
			Text:   d.String(),
			Period: d.Period.String(),
		})
	}

	writeJSON(w, r, h.Logger, http.StatusOK, res)
}

// parsePreviewPrice accepts "49", "49.00", "1,999" and "49/mo".
func parsePreviewPrice(v string) (domain.PriceElement, error) {
	amount, period, _ := strings.Cut(strings.TrimSpace(v), "/")

	usd, err := domain.ParseUSD(strings.ReplaceAll(amount, ",", ""))
	if err != nil {
		return domain.PriceElement{}, err
	}

	return domain.PriceElement{USD: usd, Period: domain.ParsePeriod(period)}, nil
}
