package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// digitGrouping removes the separators spreadsheets put between digit groups.
var digitGrouping = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// ParseInt parses whole-number text strictly. Surrounding whitespace,
// space-grouped digits and a zero fraction ("12.0") are accepted; anything else,
// including comma-grouped digits, is an error.
func ParseInt(s string) (int, error) {
	clean := digitGrouping.Replace(strings.TrimSpace(s))
	if i, err := strconv.Atoi(clean); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

// ToString converts ids of any JSON type to their text form. Whole floats
// print without exponent or fraction, so a numeric id 1234567 stays "1234567".
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
