package usecase

import (
	"math"
	"sort"

	"FundRadar/internal/domain/models"
)

// hoursPerYear is the compounding horizon for annualizing an hourly spread.
const hoursPerYear = 24 * 365

// Ranker derives the cross-venue discrepancy view from a canonical table.
// It is decoupled from collection: any table works, wherever it came from.
type Ranker struct {
	top int
}

func NewRanker(top int) *Ranker {
	if top < 1 {
		top = 5
	}
	return &Ranker{top: top}
}

// Rank builds one row per asset quoted on at least two venues, ordered so
// that opposite-sign spreads come first and wider spreads beat narrower
// ones within each group. top bounds the result; top <= 0 falls back to
// the configured default.
func (r *Ranker) Rank(table models.CanonicalTable, top int) []models.Opportunity {
	if top <= 0 {
		top = r.top
	}
	rows := make([]models.Opportunity, 0, len(table))

	for asset, byVenue := range table {
		if len(byVenue) < 2 {
			continue
		}

		var row models.Opportunity
		row.Asset = asset
		first := true
		// Fixed venue order so ties resolve to the first venue seen.
		for _, venue := range models.VenueOrder {
			rate, ok := byVenue[venue]
			if !ok {
				continue
			}
			if first {
				row.MinVenue, row.MinRate = venue, rate
				row.MaxVenue, row.MaxRate = venue, rate
				first = false
				continue
			}
			if rate < row.MinRate {
				row.MinVenue, row.MinRate = venue, rate
			}
			if rate > row.MaxRate {
				row.MaxVenue, row.MaxRate = venue, rate
			}
		}

		row.Spread = row.MaxRate - row.MinRate
		row.SignFlip = row.MinRate < 0 && row.MaxRate > 0
		if row.SignFlip {
			// Delta-neutral long/short capturing the full spread every
			// hour, compounded for a year.
			apy := math.Pow(1+row.Spread, hoursPerYear) - 1
			row.AnnualizedSpread = &apy
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SignFlip != rows[j].SignFlip {
			return rows[i].SignFlip
		}
		if rows[i].Spread != rows[j].Spread {
			return rows[i].Spread > rows[j].Spread
		}
		return rows[i].Asset < rows[j].Asset
	})

	if len(rows) > top {
		rows = rows[:top]
	}
	return rows
}
