package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ppiankov/floodspectre/internal/analyzer"
)

type manifest struct {
	RunID     string       `json:"run_id"`
	Tool      string       `json:"tool"`
	Version   string       `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	Target    Target       `json:"target"`
	Config    ReportConfig `json:"config"`
	Counts    Counts       `json:"counts"`
	Files     []string     `json:"files"`
}

// Generate writes summary.json content.
func (r *SummaryReporter) Generate(data Data) error {
	s := data.Result.Summary
	out := analyzer.Summary{
		TotalProjects:    s.TotalProjects,
		TotalContractors: s.TotalContractors,
		GlobalAvgDelay:   Round2(s.GlobalAvgDelay),
		TotalSavings:     Round2(s.TotalSavings),
	}
	return encodeJSON(r.Writer, out)
}

// Generate writes manifest.json content.
func (r *ManifestReporter) Generate(data Data) error {
	files := data.Files
	if files == nil {
		files = []string{}
	}
	return encodeJSON(r.Writer, manifest{
		RunID:     data.RunID,
		Tool:      data.Tool,
		Version:   data.Version,
		Timestamp: data.Timestamp,
		Target:    data.Target,
		Config:    data.Config,
		Counts:    data.Counts,
		Files:     files,
	})
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
