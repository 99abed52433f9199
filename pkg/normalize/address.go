package normalize

import (
	"strings"
)

type knownCity struct {
	match string
	city  string
	state string
}

// Ordered scan list; the first match wins. Aliases for the same city map to
// one canonical pair.
var knownCities = []knownCity{
	{"bangalore", "Bangalore", "Karnataka"},
	{"bengaluru", "Bangalore", "Karnataka"},
	{"mysore", "Mysore", "Karnataka"},
	{"mysuru", "Mysore", "Karnataka"},
	{"mangalore", "Mangalore", "Karnataka"},
	{"hubli", "Hubli", "Karnataka"},
	{"chennai", "Chennai", "Tamil Nadu"},
	{"madras", "Chennai", "Tamil Nadu"},
	{"coimbatore", "Coimbatore", "Tamil Nadu"},
	{"hyderabad", "Hyderabad", "Telangana"},
	{"vijayawada", "Vijayawada", "Andhra Pradesh"},
	{"visakhapatnam", "Visakhapatnam", "Andhra Pradesh"},
	{"kochi", "Kochi", "Kerala"},
	{"cochin", "Kochi", "Kerala"},
	{"thiruvananthapuram", "Thiruvananthapuram", "Kerala"},
	{"trivandrum", "Thiruvananthapuram", "Kerala"},
	{"mumbai", "Mumbai", "Maharashtra"},
	{"bombay", "Mumbai", "Maharashtra"},
	{"pune", "Pune", "Maharashtra"},
	{"nagpur", "Nagpur", "Maharashtra"},
	{"new delhi", "New Delhi", "Delhi"},
	{"delhi", "Delhi", "Delhi"},
	{"kolkata", "Kolkata", "West Bengal"},
	{"calcutta", "Kolkata", "West Bengal"},
	{"ahmedabad", "Ahmedabad", "Gujarat"},
	{"jaipur", "Jaipur", "Rajasthan"},
	{"lucknow", "Lucknow", "Uttar Pradesh"},
	{"patna", "Patna", "Bihar"},
	{"bhubaneswar", "Bhubaneswar", "Odisha"},
	{"chandigarh", "Chandigarh", "Punjab"},
	{"guwahati", "Guwahati", "Assam"},
}

var knownStates = []string{
	"karnataka",
	"tamil nadu",
	"kerala",
	"andhra pradesh",
	"telangana",
	"maharashtra",
	"west bengal",
	"gujarat",
	"rajasthan",
	"uttar pradesh",
	"madhya pradesh",
	"bihar",
	"odisha",
	"punjab",
	"haryana",
	"assam",
	"jharkhand",
	"chhattisgarh",
	"goa",
	"delhi",
}

// ExtractCityState scans free-text address input for a known city name,
// optionally followed by a PIN code, and returns the canonical (city, state)
// pair. When no city matches, a known state name as a substring yields
// ("", State); otherwise both values are empty.
func ExtractCityState(address string) (string, string) {
	lower := strings.ToLower(strings.TrimSpace(address))
	if lower == "" {
		return "", ""
	}

	for _, c := range knownCities {
		if strings.Contains(lower, c.match) {
			return c.city, c.state
		}
	}

	for _, s := range knownStates {
		if strings.Contains(lower, s) {
			return "", titleCase(s)
		}
	}

	return "", ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
