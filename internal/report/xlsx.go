package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// Generate writes a workbook with one sheet per report and a Summary sheet.
func (r *XLSXReporter) Generate(data Data) error {
	f := excelize.NewFile()
	defer f.Close()

	tables := []table{
		tableFor(Regional, data.Result),
		tableFor(Contractors, data.Result),
		tableFor(Trends, data.Result),
	}

	if err := f.SetSheetName("Sheet1", tables[0].sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for i, t := range tables {
		if i > 0 {
			if _, err := f.NewSheet(t.sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", t.sheet, err)
			}
		}
		if err := writeSheet(f, t); err != nil {
			return err
		}
	}

	s := data.Result.Summary
	summary := table{
		sheet:  summarySheet,
		header: []string{"Metric", "Value"},
		rows: [][]any{
			{"TotalProjects", s.TotalProjects},
			{"TotalContractors", s.TotalContractors},
			{"GlobalAvgDelay", s.GlobalAvgDelay},
			{"TotalSavings", s.TotalSavings},
		},
	}
	if _, err := f.NewSheet(summary.sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", summary.sheet, err)
	}
	if err := writeSheet(f, summary); err != nil {
		return err
	}

	if err := f.Write(r.Writer); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, t table) error {
	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", t.sheet, err)
	}

	for i, row := range t.rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = numericCell(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.sheet, cell, &cells); err != nil {
			return fmt.Errorf("write %s row %d: %w", t.sheet, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(t.header))
	if err != nil {
		return err
	}
	return f.SetColWidth(t.sheet, "A", last, 18)
}
