package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rating is a leaderboard rating that may be numeric ("4.5") or a label
// ("Editors' Choice", "4+"). Raw always holds the trimmed source text.
type Rating struct {
	Raw     string
	Value   float64
	Numeric bool
}

// ParseRating coerces raw CSV text into a Rating.
func ParseRating(raw string) Rating {
	raw = strings.TrimSpace(raw)
	if v, ok := parseNumber(raw); ok {
		return Rating{Raw: raw, Value: v, Numeric: true}
	}
	return Rating{Raw: raw}
}

// NumericRating builds a Rating from a number.
func NumericRating(v float64) Rating {
	return Rating{Raw: formatNumber(v), Value: v, Numeric: true}
}

// Key is the grouping key for rating distributions. Numerics are formatted
// canonically so "4.50" and "4.5" fall into the same bucket.
func (r Rating) Key() string {
	if r.Numeric {
		return formatNumber(r.Value)
	}
	return r.Raw
}

func (r Rating) String() string {
	return r.Key()
}

// MarshalJSON emits a JSON number for numeric ratings and a string otherwise.
// The number keeps the source text ("4.50") when that is valid JSON.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Numeric {
		return json.Marshal(r.Raw)
	}
	if r.Raw != "" && json.Valid([]byte(r.Raw)) {
		return []byte(r.Raw), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts both native numbers and string-encoded values,
// coercing numeric strings the same way the CSV parser does.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil && len(data) > 0 && data[0] != '"' {
		*r = ParseRating(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flex unmarshal rating: %w", err)
	}
	*r = ParseRating(s)
	return nil
}

// ParsePosition parses a 1-based rank. Float-encoded ranks ("3.0") are
// truncated, as spreadsheet exports sometimes write them that way. A blank
// cell is an unranked row and yields 0.
func ParsePosition(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i, nil
	}
	f, ok := parseNumber(raw)
	if !ok {
		return 0, fmt.Errorf("invalid position %q", raw)
	}
	return int(f), nil
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
