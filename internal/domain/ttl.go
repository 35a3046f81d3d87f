// Package domain ttl.go parses the wire TTL grammar consumed by the HTTP layer.
package domain

import (
	"fmt"
	"strconv"
	"time"
)

// unitSeconds maps the single-letter TTL unit to its duration in seconds.
var unitSeconds = map[byte]int64{
	'm': 60,
	'h': 3600,
	'd': 86400,
}

// ParseTTL parses a string of the form "<digits><unit>" where unit is one of
// m (minutes), h (hours), or d (days), and returns the equivalent
// time.Duration. Zero is permitted and yields a zero duration (an
// immediately-expired secret once added to the current time).
//
// Rejections:
//   - empty string: "ttl is empty"
//   - no digits before the unit (e.g. "h"): a strconv parse-amount error
//   - non-digit characters in the amount (e.g. "12a3h"): a strconv parse-amount error
//   - unrecognized unit letter: "invalid duration unit: <unit>"
func ParseTTL(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("ttl is empty")
	}
	unit := s[len(s)-1]
	seconds, ok := unitSeconds[unit]
	if !ok {
		return 0, fmt.Errorf("invalid duration unit: %c", unit)
	}
	digits := s[:len(s)-1]
	amount, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ttl amount: %w", err)
	}
	return time.Duration(amount) * time.Duration(seconds) * time.Second, nil
}
