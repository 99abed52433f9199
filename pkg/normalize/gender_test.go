package normalize

import "testing"

func TestParseGender(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"m", GenderMale},
		{"M", GenderMale},
		{"male", GenderMale},
		{"MALE", GenderMale},
		{" Male ", GenderMale},
		{"f", GenderFemale},
		{"F", GenderFemale},
		{"female", GenderFemale},
		{"Female", GenderFemale},
		{"other", GenderOther},
		{"trans", GenderOther},
		{"", GenderOther},
		{"  ", GenderOther},
		{"unknown", GenderOther},
	}

	for _, tt := range tests {
		if got := ParseGender(tt.input); got != tt.want {
			t.Errorf("ParseGender(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
