package paradex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	drepo "FundRadar/internal/domain/repository"
	"FundRadar/internal/service/ratelimit"
	xhttp "FundRadar/pkg/http"
	applogger "FundRadar/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// newTestClient serves a canned body per market id; unknown markets get 404.
func newTestClient(t *testing.T, byMarket map[string]string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := byMarket[r.URL.Query().Get("market")]
		if !ok {
			http.Error(w, `{"error":"market not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	c := New(xhttp.NewClient(), srv.URL, ratelimit.New(), 0, testLogger(t))
	return c, srv
}

func TestLatestRateQuoteFallback(t *testing.T) {
	c, srv := newTestClient(t, map[string]string{
		"BTC-USDC-PERP": `{"results": [{"hourly_funding_rate": 0.0001}]}`,
	})
	defer srv.Close()

	rate, err := c.LatestRate(context.Background(), "BTC", []string{"USD", "USDC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.0001 {
		t.Fatalf("unexpected rate %v", rate)
	}
}

func TestLatestRateBareArray(t *testing.T) {
	c, srv := newTestClient(t, map[string]string{
		"ETH-USD-PERP": `[{"hourly_funding_rate": 0.0004}, {"hourly_funding_rate": 0.0002}]`,
	})
	defer srv.Close()

	rate, err := c.LatestRate(context.Background(), "ETH", []string{"USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Last element is the most recent.
	if rate != 0.0002 {
		t.Fatalf("expected last element, got %v", rate)
	}
}

func TestLatestRateWindowDividedToHourly(t *testing.T) {
	c, srv := newTestClient(t, map[string]string{
		"SOL-USD-PERP": `{"data": [{"funding_rate": 0.0016}]}`,
	})
	defer srv.Close()

	rate, err := c.LatestRate(context.Background(), "SOL", []string{"USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.0016/8 {
		t.Fatalf("expected window rate divided to hourly, got %v", rate)
	}
}

func TestLatestRateHourlyPreferredOverWindow(t *testing.T) {
	c, srv := newTestClient(t, map[string]string{
		"DOGE-USD-PERP": `{"data": [{"funding_rate": 0.0016, "hourly_funding_rate": 0.0003}]}`,
	})
	defer srv.Close()

	rate, err := c.LatestRate(context.Background(), "DOGE", []string{"USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.0003 {
		t.Fatalf("expected hourly field to win, got %v", rate)
	}
}

func TestLatestRateNoMarket(t *testing.T) {
	c, srv := newTestClient(t, nil)
	defer srv.Close()

	_, err := c.LatestRate(context.Background(), "XYZ", []string{"USD", "USDC"})
	if !errors.Is(err, drepo.ErrNoMarket) {
		t.Fatalf("expected ErrNoMarket, got %v", err)
	}
}

func TestLatestRateEmptySeriesFallsThrough(t *testing.T) {
	c, srv := newTestClient(t, map[string]string{
		"BTC-USD-PERP":  `{"results": []}`,
		"BTC-USDC-PERP": `{"results": [{"funding_rate": 0.0008}]}`,
	})
	defer srv.Close()

	rate, err := c.LatestRate(context.Background(), "BTC", []string{"USD", "USDC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.0008/8 {
		t.Fatalf("unexpected rate %v", rate)
	}
}

func TestLatestRateCanceledContext(t *testing.T) {
	c, srv := newTestClient(t, map[string]string{
		"BTC-USD-PERP": `{"results": [{"hourly_funding_rate": 0.0001}]}`,
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.LatestRate(ctx, "BTC", []string{"USD"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
