package service

import "math"

// RoundingPrecision is the factor used to round monetary values in API
// responses to two decimal places.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// This function is used throughout the service layer to ensure consistent rounding of monetary
// values in API responses. NaN passes through unchanged: "value unknown" must
// survive rounding.
//
// The rounding uses the standard "round half up" approach via math.Round.
func round(value float64) float64 {
	if math.IsNaN(value) {
		return value
	}
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
