package browse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const placeholderDash = "-"

// RenderRating formats a rating value as star glyphs with a one-decimal
// label. Nil and empty values render as a dash; a non-numeric string is
// returned unchanged.
func RenderRating(value any) string {
	var rating float64
	switch v := value.(type) {
	case nil:
		return placeholderDash
	case *float64:
		if v == nil {
			return placeholderDash
		}
		rating = *v
	case float64:
		rating = v
	case float32:
		rating = float64(v)
	case int:
		rating = float64(v)
	case int64:
		rating = float64(v)
	case string:
		if v == "" {
			return placeholderDash
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return v
		}
		rating = parsed
	default:
		return placeholderDash
	}

	filled := int(math.Round(rating))
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled) + " " + fmt.Sprintf("%.1f", rating)
}
