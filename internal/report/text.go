package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

var tableTitles = map[Table]string{
	Regional:    "Flood Mitigation Efficiency Summary",
	Contractors: "Top Contractors Performance Ranking",
	Trends:      "Annual Project Type Cost Overrun Trends",
}

// Generate writes every report as a console table followed by the summary.
func (r *TextReporter) Generate(data Data) error {
	w := &errWriter{w: r.Writer}

	w.println("floodspectre: Flood Control Project Reports")
	w.println(strings.Repeat("=", 43))
	w.printf("Funding years %d-%d, %s records analyzed\n",
		data.Config.YearFrom, data.Config.YearTo, FormatCount(data.Counts.Retained))

	for _, t := range []Table{Regional, Contractors, Trends} {
		w.println("")
		w.println(tableTitles[t])
		if w.err != nil {
			return w.err
		}
		tbl := tableFor(t, data.Result)
		if len(tbl.rows) == 0 {
			w.println("(no rows)")
			continue
		}
		renderTable(r.Writer, tbl)
	}

	w.println("")
	writeTextSummary(w, data)
	return w.err
}

func renderTable(out io.Writer, t table) {
	tw := tablewriter.NewWriter(out)
	tw.SetHeader(t.header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(t.formatted())
	tw.Render()
}

func writeTextSummary(w *errWriter, data Data) {
	s := data.Result.Summary
	w.println("Summary")
	w.println("-------")
	w.printf("Total projects:     %s\n", FormatCount(s.TotalProjects))
	w.printf("Total contractors:  %s\n", FormatCount(s.TotalContractors))
	w.printf("Global avg delay:   %s days\n", FormatFloat(s.GlobalAvgDelay))
	w.printf("Total savings:      %s\n", FormatFloat(s.TotalSavings))

	if data.Counts.Dropped > 0 {
		w.printf("\nWarnings:\n  - %s rows dropped as malformed\n", FormatCount(data.Counts.Dropped))
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
