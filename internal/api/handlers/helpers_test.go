package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"geo-pricing-service/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestVisitorFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?tz=Asia/Tokyo", nil)
	req.RemoteAddr = "203.0.113.9:5123"
	req.Header.Set("X-Timezone", "Europe/London")

	got := visitorFromRequest(req)
	want := domain.Visitor{IP: "203.0.113.9", TimeZone: "Asia/Tokyo"}
	if got != want {
		t.Fatalf("visitor = %+v, want %+v", got, want)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	req.Header.Set("X-Timezone", "Europe/London")

	got = visitorFromRequest(req)
	want = domain.Visitor{IP: "198.51.100.7", TimeZone: "Europe/London"}
	if got != want {
		t.Fatalf("visitor = %+v, want %+v", got, want)
	}
}

func TestParsePreviewPrice(t *testing.T) {
	cases := []struct {
		in     string
		usd    string
		period domain.BillingPeriod
	}{
		{"49", "49", domain.PeriodNone},
		{"1,999.00", "1999", domain.PeriodNone},
		{"49/mo", "49", domain.PeriodMonthly},
		{" 19.5/month ", "19.5", domain.PeriodMonthly},
	}
	for _, tc := range cases {
		got, err := parsePreviewPrice(tc.in)
		if err != nil {
			t.Fatalf("parsePreviewPrice(%q): %v", tc.in, err)
		}
		if got.USD.String() != tc.usd || got.Period != tc.period {
			t.Errorf("parsePreviewPrice(%q) = (%s, %v), want (%s, %v)", tc.in, got.USD, got.Period, tc.usd, tc.period)
		}
	}

	for _, in := range []string{"abc", "-5", "1e19", "1e25/mo", "2,000,000,000"} {
		if _, err := parsePreviewPrice(in); !errors.Is(err, domain.ErrInvalidUSD) {
			t.Errorf("parsePreviewPrice(%q) error = %v, want ErrInvalidUSD", in, err)
		}
	}
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	req := httptest.NewRequest(http.MethodGet, "/api/prices", nil)
	rec := httptest.NewRecorder()

	writeJSON(rec, req, zap.New(core), http.StatusOK, map[string]any{"bad": make(chan int)})

	entries := logs.FilterMessage("encode failed").All()
	if len(entries) != 1 {
		t.Fatalf("encode failures logged = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["path"]; got != "/api/prices" {
		t.Errorf("path field = %v, want /api/prices", got)
	}

	rec = httptest.NewRecorder()
	writeError(rec, req, zap.New(core), http.StatusBadRequest, "nope")
	if rec.Code != http.StatusBadRequest || logs.Len() != 1 {
		t.Errorf("writeError: code %d, logs %d", rec.Code, logs.Len())
	}
}
