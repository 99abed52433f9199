package normalize

import (
	"regexp"
	"strings"
	"time"
)

var ordinalPattern = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)\b`)

// Explicit layouts tried in order. Layouts without a year parse to year 0,
// which is replaced with the current year afterwards.
var loggedTimeLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1-2-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2 Jan 2006 3:04 PM",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 January 2006",
	"Jan 2",
	"January 2",
	"2 Jan",
	"2 January",
	"1/2",
}

// Lenient fallbacks when no explicit layout matches.
var fallbackLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.ANSIC,
	time.UnixDate,
}

// ParseLoggedTime parses "date logged in" cells such as "3rd Apr 2021" or
// "4/15/2021 9:30 AM". Ordinal day suffixes are stripped first, layouts are
// tried in order, a missing year is assumed to be the current one and the
// result is always in UTC.
func ParseLoggedTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	s = ordinalPattern.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")

	for _, layout := range loggedTimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			now := time.Now()
			t = time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		}
		return t.UTC(), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
