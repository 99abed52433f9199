package importer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"medreg/pkg/logger"
	"medreg/pkg/model"
	"medreg/pkg/normalize"
)

// PatientStore is the persistence surface the importer needs. The patients
// repository satisfies it.
type PatientStore interface {
	ExistsByMRN(ctx context.Context, mrn string) (bool, error)
	Insert(ctx context.Context, patient *model.Patient) error
}

type Importer struct {
	store PatientStore
	log   *logger.Logger
}

func New(store PatientStore, log *logger.Logger) *Importer {
	return &Importer{
		store: store,
		log:   log,
	}
}

// Run imports every sheet of the workbook at path. Rows whose MRN is
// already stored are skipped, failed rows are recorded and do not stop
// the rest of the sheet, and a sheet that cannot be read does not stop
// the rest of the workbook. The returned outcome aggregates all sheets.
func (im *Importer) Run(ctx context.Context, path string) model.ImportOutcome {
	return im.process(ctx, path, false)
}

// Validate runs the same sheet walk as Run but persists nothing. Rows are
// checked for anchor fields and parseability of age, year and gender, and
// the outcome counts rows that would import cleanly.
func (im *Importer) Validate(ctx context.Context, path string) model.ImportOutcome {
	return im.process(ctx, path, true)
}

func (im *Importer) process(ctx context.Context, path string, dryRun bool) model.ImportOutcome {
	var outcome model.ImportOutcome

	if _, err := os.Stat(path); err != nil {
		outcome.Errors++
		outcome.Messages = append(outcome.Messages, fmt.Sprintf("workbook not found: %s", path))
		im.log.Error("Workbook not found", "path", path, "error", err.Error())
		return outcome
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		outcome.Errors++
		outcome.Messages = append(outcome.Messages, fmt.Sprintf("failed to open workbook: %v", err))
		im.log.Error("Failed to open workbook", "path", path, "error", err.Error())
		return outcome
	}
	defer func() {
		if err := f.Close(); err != nil {
			im.log.Warn("Failed to close workbook", "path", path, "error", err.Error())
		}
	}()

	for _, sheet := range f.GetSheetList() {
		sheetOutcome := im.processSheet(ctx, f, sheet, dryRun)
		outcome.Merge(sheetOutcome)
	}

	im.log.Info("Workbook processed",
		"path", path,
		"dry_run", dryRun,
		"total", outcome.Total,
		"imported", outcome.Imported,
		"skipped", outcome.Skipped,
		"errors", outcome.Errors)

	return outcome
}

func (im *Importer) processSheet(ctx context.Context, f *excelize.File, sheet string, dryRun bool) model.ImportOutcome {
	var outcome model.ImportOutcome

	rows, err := f.GetRows(sheet)
	if err != nil {
		outcome.Errors++
		outcome.Messages = append(outcome.Messages, fmt.Sprintf("%s: failed to read sheet: %v", sheet, err))
		im.log.Error("Failed to read sheet", "sheet", sheet, "error", err.Error())
		return outcome
	}

	if len(rows) <= 1 {
		im.log.Warn("Sheet has no data rows", "sheet", sheet)
		outcome.Messages = append(outcome.Messages, fmt.Sprintf("%s: no data rows", sheet))
		return outcome
	}

	mapping := mapHeaders(rows[0])
	if len(mapping) == 0 {
		im.log.Warn("Sheet has no recognized columns", "sheet", sheet)
		outcome.Messages = append(outcome.Messages, fmt.Sprintf("%s: no recognized columns", sheet))
		return outcome
	}

	for i, cells := range rows[1:] {
		rec := buildRecord(sheet, i+2, cells, mapping)
		if !rec.Anchored() {
			continue
		}

		outcome.Total++

		if dryRun {
			if errs := validateRecord(rec); len(errs) > 0 {
				outcome.Errors++
				outcome.Messages = append(outcome.Messages,
					fmt.Sprintf("%s Row %d: %s", rec.Sheet, rec.Row, strings.Join(errs, "; ")))
				continue
			}
			outcome.Imported++
			continue
		}

		im.importRecord(ctx, rec, &outcome)
	}

	return outcome
}

func (im *Importer) importRecord(ctx context.Context, rec RawRecord, outcome *model.ImportOutcome) {
	rowError := func(err error) {
		outcome.Errors++
		outcome.Messages = append(outcome.Messages,
			fmt.Sprintf("%s Row %d: %v", rec.Sheet, rec.Row, err))
		im.log.Error("Row import failed",
			"sheet", rec.Sheet,
			"row", rec.Row,
			"error", err.Error())
	}

	mrn := rec.Get(FieldMRN)
	exists, err := im.store.ExistsByMRN(ctx, mrn)
	if err != nil {
		rowError(fmt.Errorf("duplicate check failed: %w", err))
		return
	}
	if exists {
		outcome.Skipped++
		im.log.Debug("Skipping existing patient", "sheet", rec.Sheet, "row", rec.Row, "mrn", mrn)
		return
	}

	if err := im.store.Insert(ctx, rec.Normalize()); err != nil {
		rowError(err)
		return
	}

	outcome.Imported++
}

// validateRecord applies the dry-run checks: age, year and gender must
// be parseable when supplied. Anchor-field presence is already enforced
// by the row walk itself.
func validateRecord(rec RawRecord) []string {
	var errs []string

	if raw := strings.TrimSpace(rec.Get(FieldAge)); raw != "" {
		if _, ok := normalize.ParseAge(raw); !ok {
			errs = append(errs, fmt.Sprintf("unparseable age %q", raw))
		}
	}
	if raw := strings.TrimSpace(rec.Get(FieldYear)); raw != "" {
		if _, ok := normalize.ParseYear(raw); !ok {
			errs = append(errs, fmt.Sprintf("unparseable year %q", raw))
		}
	}
	if raw := strings.TrimSpace(rec.Get(FieldGender)); raw != "" {
		if normalize.ParseGender(raw) == normalize.GenderOther &&
			!strings.EqualFold(raw, "other") && !strings.EqualFold(raw, "o") {
			errs = append(errs, fmt.Sprintf("unrecognized gender %q", raw))
		}
	}

	return errs
}
