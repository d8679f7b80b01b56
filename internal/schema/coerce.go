package schema

import (
	"encoding/json"
	"math"
	"strconv"
)

// maxHourlyRate is the absolute bound on an hourly funding rate. Anything
// larger after normalization is a misidentified field (an index value, a
// timestamp fragment) rather than a rate.
const maxHourlyRate = 0.5

// CoerceRate normalizes a raw JSON scalar into a fractional hourly rate.
// Values in (1, 100] are assumed to be percentages and divided by 100.
// Returns false for non-numeric input and for anything outside the bound.
func CoerceRate(raw any) (float64, bool) {
	var x float64
	switch v := raw.(type) {
	case float64:
		x = v
	case float32:
		x = float64(v)
	case int:
		x = float64(v)
	case int64:
		x = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		x = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		x = f
	default:
		return 0, false
	}

	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	if abs := math.Abs(x); abs > 1 && abs <= 100 {
		x /= 100
	}
	if math.Abs(x) > maxHourlyRate {
		return 0, false
	}
	return x, true
}
