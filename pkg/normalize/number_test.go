package normalize

import (
	"strconv"
	"testing"
	"time"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "plain number", input: "45", want: 45, wantOK: true},
		{name: "yrs suffix", input: "45 yrs", want: 45, wantOK: true},
		{name: "years suffix", input: "62 years", want: 62, wantOK: true},
		{name: "yr attached", input: "38yr", want: 38, wantOK: true},
		{name: "zero", input: "0", want: 0, wantOK: true},
		{name: "upper bound", input: "150", want: 150, wantOK: true},
		{name: "above upper bound", input: "200", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "no digits", input: "unknown", wantOK: false},
		{name: "digits embedded in text", input: "age 54 approx", want: 54, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAge(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseAge(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseAge(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	nextYear := time.Now().Year() + 1

	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "direct parse", input: "2021", want: 2021, wantOK: true},
		{name: "date string fallback", input: "31/12/2021", want: 2021, wantOK: true},
		{name: "lower bound", input: "1900", want: 1900, wantOK: true},
		{name: "below lower bound", input: "1899", wantOK: false},
		{name: "next year accepted", input: strconv.Itoa(nextYear), want: nextYear, wantOK: true},
		{name: "far future rejected", input: "2057", wantOK: false},
		{name: "embedded year", input: "reg 2019", want: 2019, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "no four digit run", input: "21", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseYear(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseYear(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
