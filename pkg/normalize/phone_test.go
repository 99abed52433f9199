package normalize

import "testing"

func TestCleanPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare ten digits gets country code",
			input: "9876543210",
			want:  "+919876543210",
		},
		{
			name:  "ten digits with separators",
			input: "98765-43210",
			want:  "+919876543210",
		},
		{
			name:  "already in international form",
			input: "+919876543210",
			want:  "+919876543210",
		},
		{
			name:  "spaces and parentheses stripped",
			input: "+91 (987) 654 3210",
			want:  "+919876543210",
		},
		{
			name:  "eleven digits kept without country code",
			input: "09876543210",
			want:  "09876543210",
		},
		{
			name:  "too short falls back to trimmed original",
			input: " 12345 ",
			want:  "12345",
		},
		{
			name:  "too long falls back to trimmed original",
			input: "12345678901234567890",
			want:  "12345678901234567890",
		},
		{
			name:  "free text falls back to trimmed original",
			input: " not available ",
			want:  "not available",
		},
		{
			name:  "plus not at start is dropped",
			input: "98765+43210",
			want:  "+919876543210",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPhoneNumber(tt.input)
			if got != tt.want {
				t.Errorf("CleanPhoneNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanPhoneNumberIdempotent(t *testing.T) {
	inputs := []string{
		"9876543210",
		"+919876543210",
		"98765-43210",
		"+1 (555) 123-4567",
		"08012345678",
	}

	for _, input := range inputs {
		once := CleanPhoneNumber(input)
		twice := CleanPhoneNumber(once)
		if once != twice {
			t.Errorf("CleanPhoneNumber not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
