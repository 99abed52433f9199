package normalize

import (
	"time"
)

const defaultDOBAgeYears = 50

// EstimateDOB derives a date-of-birth estimate from the registration year
// and age: January 1st of (registration year - age). An unknown registration
// year falls back to the current year; an unknown age yields January 1st
// fifty years ago.
func EstimateDOB(regYear, age *int) time.Time {
	now := time.Now()

	if age == nil {
		return time.Date(now.Year()-defaultDOBAgeYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	year := now.Year()
	if regYear != nil {
		year = *regYear
	}
	return time.Date(year-*age, time.January, 1, 0, 0, 0, 0, time.UTC)
}
