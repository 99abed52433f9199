package model

// ImportOutcome aggregates the result of one importer run. Counters are
// summed across all worksheets; Messages keeps sheet- and row-scoped
// diagnostics in the order they were recorded.
type ImportOutcome struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   int      `json:"errors"`
	Messages []string `json:"messages,omitempty"`
}

// Merge folds a per-sheet outcome into the run-level outcome.
func (o *ImportOutcome) Merge(other ImportOutcome) {
	o.Total += other.Total
	o.Imported += other.Imported
	o.Skipped += other.Skipped
	o.Errors += other.Errors
	o.Messages = append(o.Messages, other.Messages...)
}
