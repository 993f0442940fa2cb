// Package parsing turns noisy upstream text into typed values: suffixed
// counters, entity-laden bios and the model's flag assessment.
package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// countPattern accepts a decimal number with an optional magnitude suffix.
var countPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([KMB])?$`)

var suffixMultipliers = map[string]float64{
	"K": 1e3,
	"M": 1e6,
	"B": 1e9,
}

// ParseCount converts a display counter such as "1,234", "12.3K" or "4M" to
// an integer. It is total: empty or unrecognized input yields 0.
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ToUpper(s)

	m := countPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	if mult, ok := suffixMultipliers[m[2]]; ok {
		value *= mult
	}

	return truncate(value)
}

// truncate drops the fractional part, absorbing float error such as
// 4.1*1e6 == 4099999.9999999995.
func truncate(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= float64(math.MaxInt64) {
		return math.MaxInt
	}
	n := math.Trunc(v)
	if v-n > 1-1e-6 {
		n++
	}
	return int(n)
}
