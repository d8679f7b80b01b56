package models

// Requests for the funding HTTP endpoints. Defined in domain for consistency and reuse.

// FundingRequest filters one collection cycle. Bases and Quotes are
// comma-separated lists; empty means "use the feed-derived defaults".
type FundingRequest struct {
	Bases  string `query:"bases" json:"bases"`
	Limit  int    `query:"limit" json:"limit" default:"0" validate:"gte=0,lte=500"`
	Quotes string `query:"quotes" json:"quotes"`
}

// OpportunitiesRequest bounds the ranked discrepancy view.
type OpportunitiesRequest struct {
	Top int `query:"top" json:"top" default:"5" validate:"gte=1,lte=50"`
}
