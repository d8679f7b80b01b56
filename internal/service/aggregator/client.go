package aggregator

import (
	"context"
	"fmt"

	"FundRadar/internal/domain/models"
	drepo "FundRadar/internal/domain/repository"
	"FundRadar/internal/schema"
	xhttp "FundRadar/pkg/http"
	applogger "FundRadar/pkg/logger"
)

// Client implements an AggregatorSource over the zkLighter funding-rates
// endpoint, which serves Hyperliquid and Lighter in one undocumented JSON
// document. The payload is consumed purely through traversal and the
// heuristic extractor; no schema is assumed.
type Client struct {
	http        *xhttp.Client
	url         string
	periodHours float64
	extractor   *schema.Extractor
	logger      *applogger.Logger
	metrics     drepo.Metrics
}

// New creates a new aggregator client. periodHours is the funding window of
// the upstream feed (8 for both venues today); raw rates are divided by it
// to become hourly. This is a fact about the feed, not a universal constant.
func New(httpClient *xhttp.Client, url string, periodHours float64, extractor *schema.Extractor, logger *applogger.Logger, metrics drepo.Metrics) *Client {
	return &Client{
		http:        httpClient,
		url:         url,
		periodHours: periodHours,
		extractor:   extractor,
		logger:      logger,
		metrics:     metrics,
	}
}

// FetchAll reads the aggregator feed once and builds the partial canonical
// table for the two aggregator venues, plus the ordered list of base assets
// seen on Lighter. A transport failure here fails the whole cycle.
func (c *Client) FetchAll(ctx context.Context) (models.CanonicalTable, []string, error) {
	var payload any
	if err := c.http.GetJSON(ctx, c.url, nil, &payload); err != nil {
		c.metrics.RecordVenueFetch("aggregator", "error")
		return nil, nil, fmt.Errorf("aggregator fetch: %w", err)
	}

	table := make(models.CanonicalTable)
	var lighterBases []string
	seenLighter := make(map[string]bool)
	nodes := 0

	for node := range schema.Walk(payload) {
		nodes++
		rec := c.extractor.Extract(node.Obj, node.Path)
		venue := models.Venue(rec.Platform)
		if !models.AggregatorVenues[venue] || rec.Base == "" || !rec.HasRate {
			continue
		}

		hourly := rec.Rate / c.periodHours
		table.Set(rec.Base, venue, hourly)
		c.metrics.RecordRate(rec.Base, string(venue), hourly)

		if venue == models.VenueLighter && !seenLighter[rec.Base] {
			seenLighter[rec.Base] = true
			lighterBases = append(lighterBases, rec.Base)
		}
	}

	c.metrics.RecordVenueFetch("aggregator", "ok")
	c.logger.Info("aggregator ingested",
		applogger.Int("nodes", nodes),
		applogger.Int("assets", len(table)),
		applogger.Int("lighter_bases", len(lighterBases)),
	)
	if len(table) == 0 {
		c.logger.Warn("aggregator yielded no admissible records; feed shape may have changed")
	}

	return table, lighterBases, nil
}

var _ drepo.AggregatorSource = (*Client)(nil)
