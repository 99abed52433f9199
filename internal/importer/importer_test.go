package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"medreg/pkg/logger"
	"medreg/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:  "error",
		Format: logger.JSON,
		Output: io.Discard,
	})
}

// writeWorkbook saves a workbook with the given sheets into a temp dir and
// returns its path. Each sheet is a slice of rows, header first.
func writeWorkbook(t *testing.T, sheets map[string][][]string) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range rows {
			cells := make([]any, len(row))
			for j, v := range row {
				cells[j] = v
			}
			if err := f.SetSheetRow(name, fmt.Sprintf("A%d", i+1), &cells); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "patients.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

type mockStore struct {
	existsFunc func(ctx context.Context, mrn string) (bool, error)
	insertFunc func(ctx context.Context, patient *model.Patient) error
}

func (m *mockStore) ExistsByMRN(ctx context.Context, mrn string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, mrn)
	}
	return false, nil
}

func (m *mockStore) Insert(ctx context.Context, patient *model.Patient) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, patient)
	}
	return nil
}

// memStore keys patients by the MRN exactly as written.
type memStore struct {
	patients map[string]*model.Patient
}

func newMemStore() *memStore {
	return &memStore{patients: make(map[string]*model.Patient)}
}

func (m *memStore) ExistsByMRN(_ context.Context, mrn string) (bool, error) {
	_, ok := m.patients[mrn]
	return ok, nil
}

func (m *memStore) Insert(_ context.Context, patient *model.Patient) error {
	m.patients[patient.MRN] = patient
	return nil
}

var breastHeader = []string{"SNo", "Name", "MRN No.", "Year", "Diagnosis", "Stage", "Age", "Sex", "Contact No", "Address", "Date Logged In"}

func TestRunImportsAndNormalizes(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Breast": {
			breastHeader,
			{"1", "Ramesh Kumar Rao", "MH-1234", "2016", "Carcinoma breast", "stage iii", "40", "m", "9876543210", "Jayanagar, BANGALORE", "5/7/2016 10:30:00 AM"},
			{"2", "Sita Devi", "MH-5678", "2016", "Carcinoma breast", "II", "55", "f", "+919812345678", "Mysore", ""},
		},
	})

	store := newMemStore()
	outcome := New(store, testLogger()).Run(context.Background(), path)

	if outcome.Total != 2 || outcome.Imported != 2 {
		t.Fatalf("expected 2 imported of 2, got %+v", outcome)
	}
	if outcome.Errors != 0 {
		t.Fatalf("unexpected errors: %v", outcome.Messages)
	}

	p := store.patients["MH-1234"]
	if p == nil {
		t.Fatal("expected patient MH-1234 to be stored")
	}
	if p.PatientID != "BR1234" {
		t.Errorf("expected patient ID BR1234, got %q", p.PatientID)
	}
	if p.FirstName != "Ramesh" || p.LastName != "Kumar Rao" {
		t.Errorf("unexpected name split: %q %q", p.FirstName, p.LastName)
	}
	if p.Gender != "Male" {
		t.Errorf("expected gender Male, got %q", p.Gender)
	}
	if p.Phone != "+919876543210" {
		t.Errorf("expected phone +919876543210, got %q", p.Phone)
	}
	if p.Stage != "III" {
		t.Errorf("expected stage III, got %q", p.Stage)
	}
	if p.City != "Bangalore" || p.State != "Karnataka" {
		t.Errorf("unexpected city/state: %q %q", p.City, p.State)
	}
	if p.CancerSite != "Breast" {
		t.Errorf("expected cancer site Breast, got %q", p.CancerSite)
	}
	if p.Age == nil || *p.Age != 40 {
		t.Errorf("expected age 40, got %v", p.Age)
	}
	if p.EstimatedDOB.Year() != 1976 {
		t.Errorf("expected estimated DOB in 1976, got %v", p.EstimatedDOB)
	}
	if p.LoggedAt == nil || p.LoggedAt.Year() != 2016 {
		t.Errorf("expected logged time in 2016, got %v", p.LoggedAt)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Lung": {
			{"Name", "MH No", "Age", "Sex"},
			{"Arun Singh", "LK-100", "60", "m"},
			{"Meena Kumari", "LK-200", "45", "f"},
		},
	})

	store := newMemStore()
	im := New(store, testLogger())

	first := im.Run(context.Background(), path)
	if first.Imported != 2 || first.Skipped != 0 {
		t.Fatalf("first run: %+v", first)
	}

	second := im.Run(context.Background(), path)
	if second.Imported != 0 {
		t.Errorf("second run imported %d, want 0", second.Imported)
	}
	if second.Skipped != first.Imported {
		t.Errorf("second run skipped %d, want %d", second.Skipped, first.Imported)
	}
	if len(store.patients) != 2 {
		t.Errorf("store holds %d patients, want 2", len(store.patients))
	}
}

func TestRunDropsRowsWithoutAnchors(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Ovary": {
			{"Name", "MRN No", "Age"},
			{"", "", "40"},
			{"Lakshmi Bai", "OV-1", "50"},
			{"Name Without MRN", "", "45"},
			{"", "OV-9", "60"},
			{"   ", "", ""},
		},
	})

	outcome := New(newMemStore(), testLogger()).Run(context.Background(), path)

	if outcome.Total != 1 || outcome.Imported != 1 {
		t.Fatalf("expected only the anchored row to count, got %+v", outcome)
	}
	if outcome.Errors != 0 {
		t.Errorf("dropped rows must not error: %v", outcome.Messages)
	}
}

func TestRunHeaderOnlySheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Prostate": {
			{"Name", "MRN No", "Age"},
		},
	})

	outcome := New(newMemStore(), testLogger()).Run(context.Background(), path)

	if outcome.Total != 0 || outcome.Imported != 0 || outcome.Errors != 0 {
		t.Fatalf("expected empty outcome, got %+v", outcome)
	}
	if len(outcome.Messages) != 1 || !strings.Contains(outcome.Messages[0], "no data rows") {
		t.Errorf("expected a no-data warning, got %v", outcome.Messages)
	}
}

func TestRunRowFailureDoesNotStopSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Cervix": {
			{"Name", "MRN No", "Age"},
			{"Anita Rao", "CX-1", "40"},
			{"Geeta Iyer", "CX-2", "50"},
		},
	})

	store := &mockStore{
		insertFunc: func(_ context.Context, patient *model.Patient) error {
			if patient.MRN == "CX-1" {
				return errors.New("write conflict")
			}
			return nil
		},
	}

	outcome := New(store, testLogger()).Run(context.Background(), path)

	if outcome.Imported != 1 || outcome.Errors != 1 {
		t.Fatalf("expected 1 imported and 1 error, got %+v", outcome)
	}
	if len(outcome.Messages) != 1 || !strings.Contains(outcome.Messages[0], "Cervix Row 2") {
		t.Errorf("expected a row-scoped message, got %v", outcome.Messages)
	}
}

func TestRunMissingWorkbook(t *testing.T) {
	outcome := New(newMemStore(), testLogger()).Run(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))

	if outcome.Errors != 1 || outcome.Total != 0 {
		t.Fatalf("expected a single error outcome, got %+v", outcome)
	}
	if len(outcome.Messages) != 1 || !strings.Contains(outcome.Messages[0], "workbook not found") {
		t.Errorf("expected a not-found message, got %v", outcome.Messages)
	}
}

func TestValidatePersistsNothing(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Stomach": {
			{"Name", "MRN No", "Age", "Year"},
			{"Ravi Shankar", "GA-1", "62", "2018"},
			{"Kiran Patel", "GA-2", "not a number", "2018"},
		},
	})

	store := &mockStore{
		insertFunc: func(_ context.Context, _ *model.Patient) error {
			t.Fatal("dry run must not insert")
			return nil
		},
		existsFunc: func(_ context.Context, _ string) (bool, error) {
			t.Fatal("dry run must not query the store")
			return false, nil
		},
	}

	outcome := New(store, testLogger()).Validate(context.Background(), path)

	if outcome.Total != 2 {
		t.Fatalf("expected 2 rows counted, got %+v", outcome)
	}
	if outcome.Imported != 1 || outcome.Errors != 1 {
		t.Fatalf("expected 1 clean and 1 invalid row, got %+v", outcome)
	}
	for _, msg := range outcome.Messages {
		if !strings.Contains(msg, "Stomach Row ") {
			t.Errorf("message missing row scope: %q", msg)
		}
	}
}
