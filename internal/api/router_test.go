package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"geo-pricing-service/internal/adapters/geo"
	"geo-pricing-service/internal/adapters/rates"
	"geo-pricing-service/internal/api/dto"
	"geo-pricing-service/internal/catalog"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
	"geo-pricing-service/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexPage = `<html><body>
<button class="hamburger"></button><ul class="nav-links"></ul>
<span class="dynamic-price" data-usd="1999.00">$1,999</span>
<span class="dynamic-price" data-usd="49">$49<span class="period">/mo</span></span>
<footer><span id="year"></span></footer>
</body></html>`

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	site := fstest.MapFS{
		"index.html":         {Data: []byte(indexPage)},
		"pricing/index.html": {Data: []byte(indexPage)},
		"assets/css/app.css": {Data: []byte("body{}")},
	}

	resolver := services.NewLocationResolver(
		[]ports.CountryDetector{geo.NewTimeZoneDetector(nil)}, "", nil,
	)
	table := domain.RateTable{
		"BDT": decimal.RequireFromString("122.5"),
		"EUR": decimal.RequireFromString("0.92"),
	}
	conv := services.NewConverter(resolver, catalog.Default(), rates.NewStaticProvider(table), nil)

	now := func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	return NewRouter(conv, site, nil, now)
}

func get(t *testing.T, h http.Handler, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	var res dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, []string{"timezone"}, res.Strategies)
	assert.Equal(t, catalog.Default().Countries(), res.Countries)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPreviewPrices(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/prices?usd=1999.00&usd=49/mo&country=BD")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, "BD", res.Country)
	assert.Equal(t, "override", res.ResolvedBy)
	assert.Equal(t, "BDT", res.Currency)
	assert.Equal(t, "rendered", res.State)
	require.Len(t, res.Prices, 2)
	assert.Equal(t, "245,000৳", res.Prices[0].Text)
	assert.Equal(t, "6,000৳/mo", res.Prices[1].Text)
	assert.Equal(t, "monthly", res.Prices[1].Period)
}

func TestPreviewPricesUsesTimeZone(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/prices?usd=49", func(r *http.Request) {
		r.Header.Set("X-Timezone", "Europe/Paris")
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "timezone", res.ResolvedBy)
	assert.Equal(t, "€45", res.Prices[0].Text)
}

func TestPreviewPricesAbortedMatchesUSDReset(t *testing.T) {
	h := newTestRouter(t)

	decode := func(target string) dto.PreviewResponse {
		t.Helper()
		rec := get(t, h, target)
		require.Equal(t, http.StatusOK, rec.Code)
		var res dto.PreviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		return res
	}

	// No JPY rate in the table.
	aborted := decode("/api/prices?usd=1999.00&usd=49/mo&country=JP")
	reset := decode("/api/prices?usd=1999.00&usd=49/mo&country=US")

	assert.Equal(t, "aborted", aborted.State)
	assert.Equal(t, "usd_reset", reset.State)
	require.Len(t, aborted.Prices, 2)
	assert.Equal(t, reset.Prices, aborted.Prices)
	assert.Equal(t, "$1,999", aborted.Prices[0].Text)
}

func TestPreviewPricesBadInput(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/prices").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/prices?usd=ten").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/prices?usd=-5").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/prices?usd=1e19&country=KR").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/prices?"+strings.Repeat("usd=1&", 51)).Code)
}

func TestServePageLocalized(t *testing.T) {
	rec := get(t, newTestRouter(t), "/?tz=Asia/Dhaka")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `data-usd="1999.00">245,000৳</span>`)
	assert.Contains(t, body, `6,000৳<span class="period">/mo</span>`)
	assert.Contains(t, body, `<span id="year">2026</span>`)
	assert.Equal(t, "BDT", rec.Header().Get("X-Price-Currency"))
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
}

func TestServePageOverrideToUS(t *testing.T) {
	rec := get(t, newTestRouter(t), "/pricing/?tz=Asia/Dhaka&country=US")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `data-usd="1999.00">$1,999</span>`)
	assert.Contains(t, body, `$49<span class="period">/mo</span>`)
}

func TestServePageFromCookie(t *testing.T) {
	rec := get(t, newTestRouter(t), "/index.html", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "tz", Value: "Europe/Berlin"})
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `>€1,850</span>`)
}

func TestServeStaticAndMissing(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/assets/css/app.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, h, "/missing.html").Code)
}
