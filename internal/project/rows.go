package project

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RowSource yields raw rows keyed by column name. Next returns io.EOF after
// the last row. A *RowError reports a single unreadable row; any other error
// means the source itself failed.
//
// Every header column is present in a returned row. Cells missing from the
// end of a short row read as empty strings, so the row stands or falls on
// field coercion alone. A row with more cells than the header is a *RowError.
type RowSource interface {
	Columns() []string
	Next() (map[string]string, error)
}

// RowError describes a row that could not be read.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// CSVRows reads rows from comma-separated text with a header line.
type CSVRows struct {
	reader *csv.Reader
	header []string
}

// NewCSVRows reads the header from r. An empty input is a valid source with
// no rows.
func NewCSVRows(r io.Reader) (*CSVRows, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &CSVRows{reader: reader}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return &CSVRows{reader: reader, header: normalizeHeader(header)}, nil
}

// Columns returns the header names.
func (c *CSVRows) Columns() []string {
	return c.header
}

// Next returns the next row.
func (c *CSVRows) Next() (map[string]string, error) {
	if c.header == nil {
		return nil, io.EOF
	}
	record, err := c.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &RowError{Line: pe.Line, Err: pe.Err}
		}
		return nil, fmt.Errorf("read row: %w", err)
	}
	if len(record) > len(c.header) {
		line, _ := c.reader.FieldPos(0)
		return nil, &RowError{Line: line, Err: csv.ErrFieldCount}
	}
	return zipRow(c.header, record), nil
}

// XLSXRows reads rows from the first worksheet of an Excel workbook. The first
// row of the sheet is the header. Cells are read with their display format,
// so dates must be formatted as YYYY-MM-DD in the workbook.
type XLSXRows struct {
	header []string
	rows   [][]string
	next   int
}

// NewXLSXRows loads the workbook from r.
func NewXLSXRows(r io.Reader) (*XLSXRows, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &XLSXRows{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &XLSXRows{}, nil
	}
	return &XLSXRows{header: normalizeHeader(rows[0]), rows: rows[1:]}, nil
}

// Columns returns the header names.
func (x *XLSXRows) Columns() []string {
	return x.header
}

// Next returns the next row. Excelize trims trailing empty cells.
func (x *XLSXRows) Next() (map[string]string, error) {
	if x.next >= len(x.rows) {
		return nil, io.EOF
	}
	record := x.rows[x.next]
	x.next++
	if len(record) > len(x.header) {
		return nil, &RowError{Line: x.next + 1, Err: csv.ErrFieldCount}
	}
	return zipRow(x.header, record), nil
}

func zipRow(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row
}

// normalizeHeader strips a UTF-8 byte order mark and surrounding whitespace
// from header names.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		out[i] = strings.TrimSpace(name)
	}
	return out
}
