package models

import "time"

// Venue is a funding-rate-publishing perpetuals platform. The set is closed:
// two venues arrive through the aggregator feed, Paradex through its own
// per-market endpoint.
type Venue string

const (
	VenueHyperliquid Venue = "Hyperliquid"
	VenueLighter     Venue = "Lighter"
	VenueParadex     Venue = "Paradex"
)

// AggregatorVenues are the venues the aggregator feed is allowed to
// populate. Paradex rows only ever come from the per-market fetcher.
var AggregatorVenues = map[Venue]bool{
	VenueHyperliquid: true,
	VenueLighter:     true,
}

// VenueOrder is the fixed iteration order used wherever venue ties must
// break deterministically.
var VenueOrder = []Venue{VenueHyperliquid, VenueLighter, VenueParadex}

// CanonicalTable maps base asset -> venue -> hourly fractional funding rate.
// Rates are already hourly-normalized and bounded; an absent venue key means
// "no data", never zero. A table is built once per cycle and read-only after.
type CanonicalTable map[string]map[Venue]float64

// Set ensures the asset row exists and records the venue rate.
func (t CanonicalTable) Set(asset string, venue Venue, rate float64) {
	row, ok := t[asset]
	if !ok {
		row = make(map[Venue]float64, len(VenueOrder))
		t[asset] = row
	}
	row[venue] = rate
}

// Snapshot is the result of one full collection cycle.
type Snapshot struct {
	Data        CanonicalTable `json:"data"`
	Timestamp   time.Time      `json:"timestamp"`
	TotalAssets int            `json:"totalAssets"`
}

// Opportunity is a read-only view over one asset's venue spread: the venues
// holding the lowest and highest hourly rate, the gap between them, and the
// compounded annual yield of capturing that gap when the signs oppose.
type Opportunity struct {
	Asset            string   `json:"asset"`
	MinVenue         Venue    `json:"minVenue"`
	MinRate          float64  `json:"minRate"`
	MaxVenue         Venue    `json:"maxVenue"`
	MaxRate          float64  `json:"maxRate"`
	Spread           float64  `json:"spread"`
	SignFlip         bool     `json:"signFlip"`
	AnnualizedSpread *float64 `json:"annualizedSpread,omitempty"`
}
