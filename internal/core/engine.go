package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrorKind classifies why a check failed. The values double as the keys
// of the summary output, so they are spelled for display.
type ErrorKind string

const (
	KindRequired        ErrorKind = "Required"
	KindNotANumber      ErrorKind = "Not a Number"
	KindMinValue        ErrorKind = "Min Value"
	KindMaxValue        ErrorKind = "Max Value"
	KindInvalidEmail    ErrorKind = "Invalid Email"
	KindPatternMismatch ErrorKind = "Pattern Mismatch"
	KindInvalidOption   ErrorKind = "Invalid Option"
)

// Pre-compiled regex for email validation (avoids recompilation on each call)
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Evaluate checks a single cell value against one check. It returns the
// failure classification and true when the check fails, or false when the
// value passes.
//
// Each check is independent: a column carrying several checks can produce
// several failures for the same cell in one pass. For NumberRange the min
// bound is tested before the max bound and both are inclusive.
func Evaluate(value string, check Check) (ErrorKind, bool) {
	switch c := check.(type) {
	case NotEmpty:
		if strings.TrimSpace(value) == "" {
			return KindRequired, true
		}

	case NumberRange:
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return KindNotANumber, true
		}
		if c.Min != nil && num < *c.Min {
			return KindMinValue, true
		}
		if c.Max != nil && num > *c.Max {
			return KindMaxValue, true
		}

	case Email:
		if !emailRegex.MatchString(value) {
			return KindInvalidEmail, true
		}

	case Pattern:
		// A nil matcher means the expression never compiled; such a
		// check passes everything.
		if c.re != nil && !c.re.MatchString(value) {
			return KindPatternMismatch, true
		}

	case OneOf:
		for _, opt := range c.Options {
			if value == opt {
				return "", false
			}
		}
		return KindInvalidOption, true

	default:
		panic(fmt.Sprintf("unhandled check type %T", check))
	}

	return "", false
}
