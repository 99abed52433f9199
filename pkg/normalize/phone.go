package normalize

import (
	"strings"
)

// DefaultCountryCode is prepended to bare 10-digit numbers.
const DefaultCountryCode = "+91"

const (
	minPhoneLength = 10
	maxPhoneLength = 15
)

// CleanPhoneNumber strips everything except digits and a leading "+". A bare
// 10-digit number gets the default country code. If the cleaned form is not
// 10 to 15 characters long the original trimmed input is returned unchanged;
// the raw value is preserved rather than discarded.
func CleanPhoneNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if len(cleaned) == minPhoneLength && !strings.HasPrefix(cleaned, "+") {
		cleaned = DefaultCountryCode + cleaned
	}

	if len(cleaned) >= minPhoneLength && len(cleaned) <= maxPhoneLength {
		return cleaned
	}
	return trimmed
}
