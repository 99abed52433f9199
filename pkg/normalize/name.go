package normalize

import (
	"strings"
)

const unknownName = "Unknown"

// SplitName splits a free-text full name into given and family name.
// Blank input yields ("Unknown", "Unknown"); a single token becomes the
// given name with an empty family name.
func SplitName(full string) (string, string) {
	tokens := strings.Fields(full)

	switch len(tokens) {
	case 0:
		return unknownName, unknownName
	case 1:
		return tokens[0], ""
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}
