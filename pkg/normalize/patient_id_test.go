package normalize

import (
	"strings"
	"testing"
)

func TestGeneratePatientID(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		mrn   string
		want  string
	}{
		{name: "breast sheet", sheet: "Breast", mrn: "MH-12345", want: "BR12345"},
		{name: "lung sheet lowercase", sheet: "lung", mrn: "6789", want: "LU6789"},
		{name: "unknown sheet default prefix", sheet: "Misc", mrn: "42", want: "OT42"},
		{name: "punctuation stripped", sheet: "Cervix", mrn: "MRN/00-77", want: "CX0077"},
		{name: "sheet whitespace trimmed", sheet: " Ovary ", mrn: "555", want: "OV555"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeneratePatientID(tt.sheet, tt.mrn); got != tt.want {
				t.Errorf("GeneratePatientID(%q, %q) = %q, want %q", tt.sheet, tt.mrn, got, tt.want)
			}
		})
	}
}

func TestGeneratePatientIDDeterministic(t *testing.T) {
	first := GeneratePatientID("Breast", "MH-9912")
	for i := 0; i < 10; i++ {
		if got := GeneratePatientID("Breast", "MH-9912"); got != first {
			t.Fatalf("GeneratePatientID not deterministic: %q vs %q", got, first)
		}
	}
}

func TestGeneratePatientIDNoDigitsFallback(t *testing.T) {
	got := GeneratePatientID("Lung", "UNKNOWN")
	if !strings.HasPrefix(got, "LU") {
		t.Fatalf("GeneratePatientID fallback = %q, want LU prefix", got)
	}
	suffix := strings.TrimPrefix(got, "LU")
	if len(suffix) != 6 {
		t.Errorf("fallback suffix %q, want 6 timestamp digits", suffix)
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			t.Errorf("fallback suffix %q contains non-digit", suffix)
		}
	}
}

func TestCancerSite(t *testing.T) {
	tests := []struct {
		sheet string
		want  string
	}{
		{"Breast", "Breast"},
		{"head & neck", "Head and Neck"},
		{"HEAD AND NECK", "Head and Neck"},
		{"Prostate", "Prostate"},
		{"Something Else", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		if got := CancerSite(tt.sheet); got != tt.want {
			t.Errorf("CancerSite(%q) = %q, want %q", tt.sheet, got, tt.want)
		}
	}
}
