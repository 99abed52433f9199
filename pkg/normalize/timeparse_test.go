package normalize

import (
	"testing"
	"time"
)

func TestParseLoggedTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "us date with 12h time",
			input: "4/15/2021 9:30 AM",
			want:  time.Date(2021, 4, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "us date with 24h time",
			input: "4/15/2021 21:30",
			want:  time.Date(2021, 4, 15, 21, 30, 0, 0, time.UTC),
		},
		{
			name:  "us date only",
			input: "12/31/2021",
			want:  time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "iso date",
			input: "2021-04-15",
			want:  time.Date(2021, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "iso datetime",
			input: "2021-04-15 09:30:00",
			want:  time.Date(2021, 4, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "ordinal day",
			input: "3rd Apr 2021",
			want:  time.Date(2021, 4, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "ordinal with full month",
			input: "21st January 2022",
			want:  time.Date(2022, 1, 21, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLoggedTime(tt.input)
			if !ok {
				t.Fatalf("ParseLoggedTime(%q) failed, want %v", tt.input, tt.want)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseLoggedTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLoggedTimeMissingYear(t *testing.T) {
	got, ok := ParseLoggedTime("Apr 15")
	if !ok {
		t.Fatal("ParseLoggedTime(\"Apr 15\") failed")
	}
	want := time.Date(time.Now().Year(), 4, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseLoggedTime(\"Apr 15\") = %v, want %v", got, want)
	}
}

func TestParseLoggedTimeInvalid(t *testing.T) {
	inputs := []string{"", "   ", "not a date", "99/99/9999"}
	for _, input := range inputs {
		if got, ok := ParseLoggedTime(input); ok {
			t.Errorf("ParseLoggedTime(%q) = %v, want failure", input, got)
		}
	}
}
