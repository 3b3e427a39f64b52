package errors

import (
	"math"
	"slices"
	"strings"
)

// ValidateChoice checks that value is one of allowed. The returned error
// carries code and lists the allowed values, e.g.
//
//	INVALID_FORMAT: invalid format: "svg" (must be one of: lp, mps, network)
func ValidateChoice(code Code, name, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of: %s)", name, value, strings.Join(allowed, ", "))
}

// ValidatePositive checks that a numeric option is finite and strictly
// positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %g", name, v)
	}
	return nil
}
