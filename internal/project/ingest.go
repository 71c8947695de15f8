package project

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// maxLoggedDrops bounds how many dropped rows are logged individually.
const maxLoggedDrops = 10

// YearRange is an inclusive range of funding years.
type YearRange struct {
	From int
	To   int
}

// DefaultYears is the funding-year window the reports cover.
var DefaultYears = YearRange{From: 2021, To: 2023}

// Contains reports whether year lies in the range.
func (y YearRange) Contains(year int) bool {
	return year >= y.From && year <= y.To
}

func (y YearRange) String() string {
	return fmt.Sprintf("%d-%d", y.From, y.To)
}

// Dataset is the outcome of ingestion.
type Dataset struct {
	// Records are the well-formed rows whose funding year is in range, in
	// source order.
	Records []*Record
	// Rows counts every data row read from the source.
	Rows int
	// Parsed counts rows that produced a valid record.
	Parsed int
	// Dropped counts rows that failed to read or parse.
	Dropped int
	// MissingColumns lists required columns absent from the header.
	MissingColumns []string
}

// Retained is the number of records kept after filtering.
func (d *Dataset) Retained() int {
	return len(d.Records)
}

// Empty reports whether no record survived filtering.
func (d *Dataset) Empty() bool {
	return len(d.Records) == 0
}

// Ingest parses every row of src and keeps the records funded within years.
// Malformed rows are dropped and counted. Only a failure of the source itself
// is returned as an error.
func Ingest(src RowSource, years YearRange) (*Dataset, error) {
	ds := &Dataset{MissingColumns: MissingColumns(src.Columns())}
	if len(ds.MissingColumns) > 0 && len(src.Columns()) > 0 {
		slog.Warn("Input is missing required columns; affected rows will be dropped",
			"columns", ds.MissingColumns)
	}

	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				return nil, err
			}
			ds.Rows++
			ds.drop(err)
			continue
		}
		ds.Rows++

		rec, err := Parse(row)
		if err != nil {
			ds.drop(fmt.Errorf("row %d: %w", ds.Rows, err))
			continue
		}
		ds.Parsed++

		if years.Contains(rec.FundingYear) {
			ds.Records = append(ds.Records, rec)
		}
	}

	slog.Debug("Ingestion complete",
		"rows", ds.Rows, "parsed", ds.Parsed, "dropped", ds.Dropped,
		"retained", ds.Retained(), "years", years.String())
	return ds, nil
}

func (d *Dataset) drop(err error) {
	d.Dropped++
	if d.Dropped <= maxLoggedDrops {
		slog.Debug("Dropping malformed row", "error", err)
	}
}

// MissingColumns returns the required columns not present in header.
func MissingColumns(header []string) []string {
	var missing []string
	for _, col := range Columns {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	return missing
}
