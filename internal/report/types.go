package report

import (
	"io"
	"time"

	"github.com/ppiankov/floodspectre/internal/analyzer"
)

// Reporter is the interface for output formatters.
type Reporter interface {
	Generate(data Data) error
}

// Data holds all information needed to generate a report.
type Data struct {
	Tool      string
	Version   string
	RunID     string
	Timestamp time.Time
	Target    Target
	Config    ReportConfig
	Counts    Counts
	Result    *analyzer.AnalysisResult

	// Files lists the artifacts already written in this run. Only the
	// manifest reads it.
	Files []string
}

// Target identifies the dataset that was analyzed.
type Target struct {
	Type    string `json:"type"`
	URI     string `json:"uri"`
	URIHash string `json:"uri_hash"`
}

// ReportConfig captures the analysis configuration used.
type ReportConfig struct {
	YearFrom              int     `json:"year_from"`
	YearTo                int     `json:"year_to"`
	MinContractorProjects int     `json:"min_contractor_projects"`
	TopContractors        int     `json:"top_contractors"`
	HighDelayDays         int     `json:"high_delay_days"`
	ReliabilityDelayDays  float64 `json:"reliability_delay_days"`
	HighRiskThreshold     float64 `json:"high_risk_threshold"`
	YoYMaxYear            int     `json:"yoy_max_year"`
}

// Counts records how many rows survived each ingestion stage.
type Counts struct {
	Rows     int `json:"rows"`
	Parsed   int `json:"parsed"`
	Dropped  int `json:"dropped"`
	Retained int `json:"retained"`
}

// Table selects one of the three tabular reports.
type Table int

const (
	Regional Table = iota
	Contractors
	Trends
)

// TextReporter renders every report as a console table.
type TextReporter struct {
	Writer io.Writer
}

// CSVReporter writes a single report as CSV with a header row.
type CSVReporter struct {
	Writer io.Writer
	Table  Table
}

// SummaryReporter writes the global summary as indented JSON.
type SummaryReporter struct {
	Writer io.Writer
}

// ManifestReporter writes run metadata and the list of written files.
type ManifestReporter struct {
	Writer io.Writer
}

// XLSXReporter writes all reports into one workbook, one sheet each.
type XLSXReporter struct {
	Writer io.Writer
}

// ChartReporter plots the overrun rate per type of work across years as PNG.
type ChartReporter struct {
	Writer io.Writer
}
