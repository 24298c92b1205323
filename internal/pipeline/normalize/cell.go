package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
)

// ToFloat coerces a cell to a number. Blank, missing, non-numeric and
// non-finite values all become 0.
func ToFloat(c domain.Cell) float64 {
	var f float64
	switch v := c.(type) {
	case nil:
		return 0
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case bool:
		if v {
			f = 1
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		s = strings.ReplaceAll(s, ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToText renders a cell as a string; nil becomes "".
func ToText(c domain.Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Float returns the numeric value at column idx, or 0 when the row is too short.
func Float(row domain.Row, idx int) float64 {
	if idx < 0 || idx >= len(row) {
		return 0
	}
	return ToFloat(row[idx])
}

// Text returns the text at column idx, or "" when the row is too short.
func Text(row domain.Row, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return ToText(row[idx])
}
