package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Output file names.
const (
	RegionalFile   = "report1_regional_summary.csv"
	ContractorFile = "report2_contractor_ranking.csv"
	TrendFile      = "report3_annual_trends.csv"
	SummaryFile    = "summary.json"
	ManifestFile   = "manifest.json"
	WorkbookFile   = "floodspectre_reports.xlsx"
	ChartFile      = "report3_annual_trends.png"
)

// Kind classifies an output for progress display.
type Kind int

const (
	KindReport Kind = iota
	KindSummary
	KindArtifact
)

// Output is one file produced by an export.
type Output struct {
	Kind  Kind
	Title string
	File  string
	New   func(w io.Writer) Reporter
}

// Exporter writes the report files of one run into Dir.
type Exporter struct {
	Dir   string
	XLSX  bool
	Chart bool

	// OnWrite, if set, is called after each file has been written.
	OnWrite func(o Output, path string)
}

// Outputs lists the files Export writes, in order. The manifest is always
// last.
func (e *Exporter) Outputs() []Output {
	outputs := []Output{
		{KindReport, "1. " + tableTitles[Regional], RegionalFile, csvOf(Regional)},
		{KindReport, "2. " + tableTitles[Contractors], ContractorFile, csvOf(Contractors)},
		{KindReport, "3. " + tableTitles[Trends], TrendFile, csvOf(Trends)},
		{KindSummary, "Summary", SummaryFile, func(w io.Writer) Reporter { return &SummaryReporter{Writer: w} }},
	}
	if e.XLSX {
		outputs = append(outputs, Output{KindArtifact, "Workbook", WorkbookFile,
			func(w io.Writer) Reporter { return &XLSXReporter{Writer: w} }})
	}
	if e.Chart {
		outputs = append(outputs, Output{KindArtifact, "Overrun chart", ChartFile,
			func(w io.Writer) Reporter { return &ChartReporter{Writer: w} }})
	}
	return append(outputs, Output{KindArtifact, "Manifest", ManifestFile,
		func(w io.Writer) Reporter { return &ManifestReporter{Writer: w} }})
}

func csvOf(t Table) func(io.Writer) Reporter {
	return func(w io.Writer) Reporter { return &CSVReporter{Writer: w, Table: t} }
}

// Export writes every output and returns the paths written. It stops at the
// first failure; files written before it are kept, the failing one is not.
func (e *Exporter) Export(data Data) ([]string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, o := range e.Outputs() {
		if o.File == ManifestFile {
			data.Files = append([]string(nil), fileNames(paths)...)
		}
		path, err := WriteFile(e.Dir, o.File, o.New, data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		if e.OnWrite != nil {
			e.OnWrite(o, path)
		}
	}
	return paths, nil
}

func fileNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

// WriteFile generates a report into dir/name. Content goes to a temporary
// file in dir which is renamed into place only after it has been fully
// written and closed.
func WriteFile(dir, name string, newReporter func(io.Writer) Reporter, data Data) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := newReporter(tmp).Generate(data); err != nil {
		return "", fmt.Errorf("generate %s: %w", name, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename %s: %w", name, err)
	}
	committed = true
	return path, nil
}
