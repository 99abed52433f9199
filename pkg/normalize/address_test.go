package normalize

import "testing"

func TestExtractCityState(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCity  string
		wantState string
	}{
		{
			name:      "city with pin code",
			input:     "BANGALORE 560032",
			wantCity:  "Bangalore",
			wantState: "Karnataka",
		},
		{
			name:      "city alias",
			input:     "flat 2, bengaluru",
			wantCity:  "Bangalore",
			wantState: "Karnataka",
		},
		{
			name:      "city inside longer address",
			input:     "12 MG Road, Chennai, 600001",
			wantCity:  "Chennai",
			wantState: "Tamil Nadu",
		},
		{
			name:      "new delhi before delhi",
			input:     "Sector 5, New Delhi",
			wantCity:  "New Delhi",
			wantState: "Delhi",
		},
		{
			name:      "state only",
			input:     "some village, kerala",
			wantCity:  "",
			wantState: "Kerala",
		},
		{
			name:      "two word state",
			input:     "rural tamil nadu",
			wantCity:  "",
			wantState: "Tamil Nadu",
		},
		{
			name:      "no match",
			input:     "123 Random St",
			wantCity:  "",
			wantState: "",
		},
		{
			name:      "empty",
			input:     "",
			wantCity:  "",
			wantState: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, state := ExtractCityState(tt.input)
			if city != tt.wantCity || state != tt.wantState {
				t.Errorf("ExtractCityState(%q) = (%q, %q), want (%q, %q)",
					tt.input, city, state, tt.wantCity, tt.wantState)
			}
		})
	}
}
