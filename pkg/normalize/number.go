package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	MinAge = 0
	MaxAge = 150

	MinYear = 1900
)

var (
	digitRunPattern = regexp.MustCompile(`\d+`)
	yearRunPattern  = regexp.MustCompile(`\d{4}`)
)

// ParseAge extracts the first run of digits from inputs like "45", "45 yrs"
// or "45 years old" and accepts it only inside [0,150].
func ParseAge(raw string) (int, bool) {
	match := digitRunPattern.FindString(raw)
	if match == "" {
		return 0, false
	}

	age, err := strconv.Atoi(match)
	if err != nil || age < MinAge || age > MaxAge {
		return 0, false
	}
	return age, true
}

// ParseYear tries a direct integer parse first, then falls back to the first
// 4-digit run in the input (so "31/12/2021" yields 2021). Accepted range is
// [1900, currentYear+1].
func ParseYear(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	maxYear := time.Now().Year() + 1

	if year, err := strconv.Atoi(trimmed); err == nil {
		if year >= MinYear && year <= maxYear {
			return year, true
		}
	}

	match := yearRunPattern.FindString(trimmed)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil || year < MinYear || year > maxYear {
		return 0, false
	}
	return year, true
}
