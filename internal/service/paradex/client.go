package paradex

import (
	"context"
	"fmt"
	"net/http"

	drepo "FundRadar/internal/domain/repository"
	"FundRadar/internal/schema"
	"FundRadar/internal/service/ratelimit"
	xhttp "FundRadar/pkg/http"
	applogger "FundRadar/pkg/logger"
)

const limiterKey = "paradex"

// Hourly-rate field names tried on the latest funding entry, then the
// 8-hour-window names whose value is divided down to hourly.
var (
	hourlyRateKeys = []string{"hourly_funding_rate", "hourlyFundingRate", "funding_rate_hourly"}
	windowRateKeys = []string{"funding_rate", "fundingRate", "funding_rate_8h"}
)

const windowHours = 8

// Client fetches the latest funding rate for one market at a time from the
// Paradex funding-data endpoint.
type Client struct {
	http    *xhttp.Client
	baseURL string
	limiter *ratelimit.Limiter
	maxRPS  float64
	logger  *applogger.Logger
}

func New(httpClient *xhttp.Client, baseURL string, limiter *ratelimit.Limiter, maxRPS float64, logger *applogger.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		limiter: limiter,
		maxRPS:  maxRPS,
		logger:  logger,
	}
}

// LatestRate tries each quote candidate in order, building the market id as
// {BASE}-{QUOTE}-PERP. A 404 means the market does not exist under that
// quote; any other failure also falls through to the next candidate so a
// single bad market never aborts a batch. Returns ErrNoMarket when every
// candidate is exhausted.
func (c *Client) LatestRate(ctx context.Context, base string, quotes []string) (float64, error) {
	for _, quote := range quotes {
		if c.maxRPS > 0 {
			if err := c.limiter.Wait(ctx, limiterKey, c.maxRPS, c.maxRPS); err != nil {
				return 0, err
			}
		}

		market := fmt.Sprintf("%s-%s-PERP", base, quote)
		var payload any
		err := c.http.GetJSON(ctx, c.baseURL, map[string]string{"market": market}, &payload)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			if !xhttp.IsStatus(err, http.StatusNotFound) {
				c.logger.Debug("paradex fetch failed",
					applogger.String("market", market),
					applogger.Error(err),
				)
			}
			continue
		}

		if rate, ok := extractLatest(payload); ok {
			return rate, nil
		}
	}
	return 0, drepo.ErrNoMarket
}

// extractLatest pulls the most recent usable rate out of a funding
// time-series payload: either a bare array or an object wrapping one under
// data/results/items. The last element is assumed most recent; the upstream
// does not guarantee ordering, so a reordering there would silently pick a
// stale rate.
func extractLatest(payload any) (float64, bool) {
	items := itemsOf(payload)
	if len(items) == 0 {
		return 0, false
	}
	latest, ok := items[len(items)-1].(map[string]any)
	if !ok {
		return 0, false
	}

	for _, k := range hourlyRateKeys {
		if v, ok := latest[k]; ok {
			if r, ok := schema.CoerceRate(v); ok {
				return r, true
			}
		}
	}
	for _, k := range windowRateKeys {
		if v, ok := latest[k]; ok {
			if r, ok := schema.CoerceRate(v); ok {
				return r / windowHours, true
			}
		}
	}
	return 0, false
}

func itemsOf(payload any) []any {
	switch p := payload.(type) {
	case []any:
		return p
	case map[string]any:
		for _, k := range []string{"data", "results", "items"} {
			if arr, ok := p[k].([]any); ok {
				return arr
			}
		}
	}
	return nil
}

var _ drepo.MarketSource = (*Client)(nil)
