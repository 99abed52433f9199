package normalize

import (
	"strconv"
	"strings"
	"time"
)

// DefaultSitePrefix is used for worksheets not in the site table.
const DefaultSitePrefix = "OT"

// DefaultSiteName is the cancer-site code for unrecognized worksheets.
const DefaultSiteName = "Other"

type siteInfo struct {
	prefix string
	site   string
}

// Worksheet name (lower-cased, trimmed) to patient-ID prefix and canonical
// cancer-site code.
var sheetSites = map[string]siteInfo{
	"breast":        {"BR", "Breast"},
	"lung":          {"LU", "Lung"},
	"head and neck": {"HN", "Head and Neck"},
	"head & neck":   {"HN", "Head and Neck"},
	"cervix":        {"CX", "Cervix"},
	"ovary":         {"OV", "Ovary"},
	"prostate":      {"PR", "Prostate"},
	"colorectal":    {"CR", "Colorectal"},
	"stomach":       {"GA", "Stomach"},
	"esophagus":     {"ES", "Esophagus"},
	"liver":         {"LV", "Liver"},
	"brain":         {"BN", "Brain"},
	"leukemia":      {"LE", "Leukemia"},
	"lymphoma":      {"LY", "Lymphoma"},
}

func lookupSite(sheet string) siteInfo {
	key := strings.ToLower(strings.TrimSpace(sheet))
	if info, ok := sheetSites[key]; ok {
		return info
	}
	return siteInfo{DefaultSitePrefix, DefaultSiteName}
}

// CancerSite maps a worksheet name to its canonical cancer-site code.
func CancerSite(sheet string) string {
	return lookupSite(sheet).site
}

// GeneratePatientID derives the registry identifier from the worksheet name
// and the raw MRN: a two-letter site prefix followed by the digits of the
// MRN. When the MRN carries no digits at all, the last six digits of the
// current nanosecond timestamp stand in. Deterministic except for that
// fallback case.
func GeneratePatientID(sheet, rawMRN string) string {
	var digits strings.Builder
	for _, r := range rawMRN {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	suffix := digits.String()
	if suffix == "" {
		ts := strconv.FormatInt(time.Now().UnixNano(), 10)
		suffix = ts[len(ts)-6:]
	}

	return lookupSite(sheet).prefix + suffix
}
