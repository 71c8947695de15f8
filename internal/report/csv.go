package report

import (
	"encoding/csv"
	"fmt"
)

// Generate writes the selected report as CSV.
func (r *CSVReporter) Generate(data Data) error {
	t := tableFor(r.Table, data.Result)

	w := csv.NewWriter(r.Writer)
	if err := w.Write(t.header); err != nil {
		return fmt.Errorf("write %s header: %w", t.sheet, err)
	}
	if err := w.WriteAll(t.formatted()); err != nil {
		return fmt.Errorf("write %s rows: %w", t.sheet, err)
	}
	return nil
}
