package normalize

import (
	"strings"
)

// CleanStage trims the input, strips a leading case-insensitive "stage"
// token and upper-cases the remainder, so "stage iiib" becomes "IIIB".
func CleanStage(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if len(s) >= 5 && strings.EqualFold(s[:5], "stage") {
		s = strings.TrimSpace(s[5:])
	}
	return strings.ToUpper(s)
}
