package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"geo-pricing-service/internal/adapters/remote"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latestBody = `{"result":"success","base_code":"USD","rates":{"USD":1,"EUR":0.92,"BDT":122.5,"XXX":0}}`

func newProvider(t *testing.T, h http.HandlerFunc) *OpenERAPIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewOpenERAPIProvider(remote.NewClientWith(srv.Client()), srv.URL+"/v6/latest/USD", nil)
}

func TestOpenERAPIProviderRate(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/latest/USD", r.URL.Path)
		w.Write([]byte(latestBody))
	})

	rate, err := p.Rate(context.Background(), "BDT")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("122.5")), rate.String())

	_, err = p.Rate(context.Background(), "GBP")
	assert.ErrorIs(t, err, ports.ErrRateUnavailable)

	_, err = p.Rate(context.Background(), "XXX")
	assert.ErrorIs(t, err, ports.ErrRateUnavailable)
}

func TestOpenERAPIProviderUnavailable(t *testing.T) {
	bodies := map[string]string{
		"error result": `{"result":"error","error-type":"quota-reached"}`,
		"wrong base":   `{"result":"success","base_code":"EUR","rates":{"BDT":130}}`,
		"garbage":      `not json`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			_, err := p.Rate(context.Background(), "BDT")
			assert.ErrorIs(t, err, ports.ErrRateUnavailable)
		})
	}

	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	_, err := p.Rate(context.Background(), "BDT")
	assert.ErrorIs(t, err, ports.ErrRateUnavailable)
}

func TestOpenERAPIProviderFetchesEveryCall(t *testing.T) {
	var hits atomic.Int32
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(latestBody))
	})

	for i := 0; i < 3; i++ {
		_, err := p.Rate(context.Background(), "EUR")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestOpenERAPIProviderSharesInFlightFetch(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(latestBody))
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Rate(context.Background(), "EUR")
			assert.NoError(t, err)
		}()
	}

	// Let every caller join the flight before the server answers.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenERAPIProviderCallerCancel(t *testing.T) {
	release := make(chan struct{})
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(latestBody))
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Rate(ctx, "EUR")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(domain.RateTable{"EUR": decimal.RequireFromString("0.92")})

	rate, err := p.Rate(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.92", rate.String())

	_, err = p.Rate(context.Background(), "JPY")
	assert.ErrorIs(t, err, ports.ErrRateUnavailable)
}
