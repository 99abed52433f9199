package normalize

import (
	"strings"
)

// Canonical gender tags stored on patient records.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// ParseGender maps the usual spreadsheet codes onto the canonical tags.
// Anything unrecognized, including blank input, is Other.
func ParseGender(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "male":
		return GenderMale
	case "f", "female":
		return GenderFemale
	default:
		return GenderOther
	}
}
