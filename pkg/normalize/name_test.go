package normalize

import "testing"

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{
			name:      "empty string",
			input:     "",
			wantFirst: "Unknown",
			wantLast:  "Unknown",
		},
		{
			name:      "only whitespace",
			input:     "   \t\n  ",
			wantFirst: "Unknown",
			wantLast:  "Unknown",
		},
		{
			name:      "single token",
			input:     "Madonna",
			wantFirst: "Madonna",
			wantLast:  "",
		},
		{
			name:      "two tokens",
			input:     "John Public",
			wantFirst: "John",
			wantLast:  "Public",
		},
		{
			name:      "three tokens join the tail",
			input:     "John Q Public",
			wantFirst: "John",
			wantLast:  "Q Public",
		},
		{
			name:      "extra whitespace collapsed",
			input:     "  John \t Q   Public ",
			wantFirst: "John",
			wantLast:  "Q Public",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.input)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)",
					tt.input, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}
