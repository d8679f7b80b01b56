package schema

import (
	"encoding/json"
	"strings"
)

// Record is the heuristic read of one payload object: a canonical venue
// label, a canonical base asset, and an hourly-normalizable rate. Any field
// may be absent; callers decide which combinations are admissible.
type Record struct {
	Platform string
	Base     string
	Rate     float64
	HasRate  bool
}

// Extractor turns (object, path) pairs into Records using injected
// heuristic tables.
type Extractor struct {
	tables Tables
}

func NewExtractor(tables Tables) *Extractor {
	return &Extractor{tables: tables}
}

// Tables returns the heuristic tables the extractor was built with.
func (e *Extractor) Tables() Tables { return e.tables }

// Extract reads a venue, base asset and rate out of one object node.
// Direct key matches win; the path and one level of child objects serve as
// fallbacks. Keys are scanned in sorted order so the first match is the
// same on every run.
func (e *Extractor) Extract(obj map[string]any, path []string) Record {
	var rec Record
	var symbol string
	t := e.tables

	for _, k := range sortedKeys(obj) {
		v := obj[k]
		if s, ok := v.(string); ok {
			if rec.Platform == "" && t.IsPlatformKey(k) {
				if p, ok := t.NormPlatform(s); ok {
					rec.Platform = p
				}
			}
			if symbol == "" && t.IsSymbolKey(k) {
				symbol = s
			}
		}
		if !rec.HasRate && isScalar(v) && t.IsRateKey(k) {
			if r, ok := CoerceRate(v); ok {
				rec.Rate, rec.HasRate = r, true
			}
		}
	}

	// Venue from the path, deepest segment first. Path keys are often
	// generic ("data", array indices), so this is strictly a fallback.
	if rec.Platform == "" {
		for i := len(path) - 1; i >= 0; i-- {
			if p, ok := t.NormPlatform(path[i]); ok {
				rec.Platform = p
				break
			}
		}
	}

	// Symbol nested one level down.
	if symbol == "" {
	children:
		for _, k := range sortedKeys(obj) {
			child, ok := obj[k].(map[string]any)
			if !ok {
				continue
			}
			for _, ck := range sortedKeys(child) {
				if s, ok := child[ck].(string); ok && t.IsSymbolKey(ck) {
					symbol = s
					break children
				}
			}
		}
	}

	// Rate on the node itself by tiered preference, then on child objects.
	if !rec.HasRate {
		if r, ok := e.PickRate(obj); ok {
			rec.Rate, rec.HasRate = r, true
		}
	}
	if !rec.HasRate {
		for _, k := range sortedKeys(obj) {
			if child, ok := obj[k].(map[string]any); ok {
				if r, ok := e.PickRate(child); ok {
					rec.Rate, rec.HasRate = r, true
					break
				}
			}
		}
	}

	if symbol != "" {
		rec.Base = BaseFromSymbol(symbol)
	}
	return rec
}

// PickRate scans an object's own keys in three descending-priority tiers
// and returns the first coercible value: current/hourly-named fields first,
// then generic rate-ish names, predicted/next-period fields last. A live
// rate beats a forecast.
func (e *Extractor) PickRate(obj map[string]any) (float64, bool) {
	keys := sortedKeys(obj)
	t := e.tables

	// Tier 1: fields naming the current hourly rate.
	for _, k := range keys {
		ck := CleanAlnum(k)
		if containsAny(ck, t.PredictedRateKeys) {
			continue
		}
		if containsAny(ck, t.CurrentRateKeys) && isScalar(obj[k]) {
			if r, ok := CoerceRate(obj[k]); ok {
				return r, true
			}
		}
	}
	// Tier 2: anything rate-ish.
	for _, k := range keys {
		if containsAny(strings.ToLower(k), t.PredictedRateKeys) {
			continue
		}
		if t.IsRateKey(k) && isScalar(obj[k]) {
			if r, ok := CoerceRate(obj[k]); ok {
				return r, true
			}
		}
	}
	// Tier 3: predicted/next-period fields, last resort.
	for _, k := range keys {
		ck := CleanAlnum(k)
		if !containsAny(ck, t.PredictedRateKeys) {
			continue
		}
		if (strings.Contains(ck, "fund") || strings.Contains(ck, "rate")) && isScalar(obj[k]) {
			if r, ok := CoerceRate(obj[k]); ok {
				return r, true
			}
		}
	}
	return 0, false
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, float64, float32, int, int64, json.Number:
		return true
	default:
		return false
	}
}
