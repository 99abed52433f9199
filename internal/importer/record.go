package importer

import (
	"strings"
	"time"

	"medreg/pkg/model"
	"medreg/pkg/normalize"
)

// RawRecord is one data row of a worksheet, keyed by canonical field name.
// Cell values are kept exactly as they appear in the workbook.
type RawRecord struct {
	Sheet  string
	Row    int
	Fields map[string]string
}

func buildRecord(sheet string, row int, cells []string, mapping map[int]string) RawRecord {
	rec := RawRecord{
		Sheet:  sheet,
		Row:    row,
		Fields: make(map[string]string, len(mapping)),
	}
	for i, field := range mapping {
		if i < len(cells) {
			rec.Fields[field] = cells[i]
		}
	}
	return rec
}

// Get returns the raw cell value for a canonical field, or "" when the
// column was absent from the sheet.
func (r RawRecord) Get(field string) string {
	return r.Fields[field]
}

// Anchored reports whether the row carries both required anchor fields,
// a name and an MRN. Rows missing either are filler or unusable and are
// dropped without counting.
func (r RawRecord) Anchored() bool {
	return strings.TrimSpace(r.Get(FieldName)) != "" &&
		strings.TrimSpace(r.Get(FieldMRN)) != ""
}

// Normalize converts the raw row into a patient, running every field
// through the cleaning rules. The sheet name determines the cancer site
// and the patient ID prefix.
func (r RawRecord) Normalize() *model.Patient {
	first, last := normalize.SplitName(r.Get(FieldName))

	var agePtr *int
	if age, ok := normalize.ParseAge(r.Get(FieldAge)); ok {
		agePtr = &age
	}

	var yearPtr *int
	if year, ok := normalize.ParseYear(r.Get(FieldYear)); ok {
		yearPtr = &year
	}

	var loggedPtr *time.Time
	if logged, ok := normalize.ParseLoggedTime(r.Get(FieldLoggedAt)); ok {
		loggedPtr = &logged
	}

	address := strings.TrimSpace(r.Get(FieldAddress))
	city, state := normalize.ExtractCityState(address)

	return &model.Patient{
		PatientID:        normalize.GeneratePatientID(r.Sheet, r.Get(FieldMRN)),
		MRN:              r.Get(FieldMRN),
		FirstName:        first,
		LastName:         last,
		Age:              agePtr,
		Gender:           normalize.ParseGender(r.Get(FieldGender)),
		Phone:            normalize.CleanPhoneNumber(r.Get(FieldPhone1)),
		AltPhone1:        normalize.CleanPhoneNumber(r.Get(FieldPhone2)),
		AltPhone2:        normalize.CleanPhoneNumber(r.Get(FieldPhone3)),
		CancerSite:       normalize.CancerSite(r.Sheet),
		Stage:            normalize.CleanStage(r.Get(FieldStage)),
		Diagnosis:        strings.TrimSpace(r.Get(FieldDiagnosis)),
		RegistrationYear: yearPtr,
		Address:          address,
		City:             city,
		State:            state,
		EstimatedDOB:     normalize.EstimateDOB(yearPtr, agePtr),
		LoggedAt:         loggedPtr,
	}
}
