package browse

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseTarget reads the leading integer of text, the way a form field value
// is read: leading space is skipped, an optional sign is allowed, and parsing
// stops at the first non-digit ("12abc" is 12). ok is false unless the value
// is a positive integer; positive values past the int range clamp to
// math.MaxInt.
func ParseTarget(text string) (n int, ok bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(sign + s[:end])
	if errors.Is(err, strconv.ErrRange) && sign != "-" {
		return math.MaxInt, true
	}
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
