package normalize

import "testing"

func TestCleanStage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "stage prefix stripped", input: "stage iiib", want: "IIIB"},
		{name: "capitalized prefix", input: "Stage IV", want: "IV"},
		{name: "upper prefix", input: "STAGE 2", want: "2"},
		{name: "no prefix", input: "iib", want: "IIB"},
		{name: "already canonical", input: "IIIA", want: "IIIA"},
		{name: "surrounding whitespace", input: "  stage   iii ", want: "III"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
		{name: "bare stage word", input: "stage", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanStage(tt.input); got != tt.want {
				t.Errorf("CleanStage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
