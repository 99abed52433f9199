package importer

import (
	"strings"
)

// Canonical field names a worksheet column can map to.
const (
	FieldSerial    = "serial"
	FieldName      = "name"
	FieldMRN       = "mrn"
	FieldYear      = "year"
	FieldDiagnosis = "diagnosis"
	FieldStage     = "stage"
	FieldAge       = "age"
	FieldGender    = "gender"
	FieldPhone1    = "phone1"
	FieldPhone2    = "phone2"
	FieldPhone3    = "phone3"
	FieldAddress   = "address"
	FieldLoggedAt  = "logged_at"
)

// Header aliases as they appear in the source workbooks, lower-cased and
// trimmed. Unrecognized headers are ignored.
var headerAliases = map[string]string{
	"sno":       FieldSerial,
	"sl no":     FieldSerial,
	"serial no": FieldSerial,

	"name": FieldName,

	"mrn no.": FieldMRN,
	"mrn no":  FieldMRN,
	"mh no":   FieldMRN,

	"year": FieldYear,

	"diagnosis": FieldDiagnosis,

	"stage": FieldStage,

	"age": FieldAge,

	"sex":    FieldGender,
	"gender": FieldGender,

	"contact no":   FieldPhone1,
	"contact no 1": FieldPhone1,
	"contact no1":  FieldPhone1,
	"contact no 2": FieldPhone2,
	"contact no2":  FieldPhone2,
	"contact no 3": FieldPhone3,
	"contact no3":  FieldPhone3,

	"address": FieldAddress,

	"date logged in":     FieldLoggedAt,
	"date of logging in": FieldLoggedAt,
}

// mapHeaders builds the column index to canonical field mapping from the
// header row.
func mapHeaders(headerRow []string) map[int]string {
	mapping := make(map[int]string)
	for i, cell := range headerRow {
		key := strings.ToLower(strings.TrimSpace(cell))
		if field, ok := headerAliases[key]; ok {
			mapping[i] = field
		}
	}
	return mapping
}
