package normalize

import (
	"testing"
	"time"
)

func TestEstimateDOB(t *testing.T) {
	year := 2021
	age := 45

	got := EstimateDOB(&year, &age)
	want := time.Date(1976, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EstimateDOB(2021, 45) = %v, want %v", got, want)
	}
}

func TestEstimateDOBUnknownAge(t *testing.T) {
	year := 2021

	got := EstimateDOB(&year, nil)
	want := time.Date(time.Now().Year()-50, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EstimateDOB with unknown age = %v, want %v", got, want)
	}
}

func TestEstimateDOBUnknownYear(t *testing.T) {
	age := 30

	got := EstimateDOB(nil, &age)
	want := time.Date(time.Now().Year()-30, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EstimateDOB with unknown year = %v, want %v", got, want)
	}
}
