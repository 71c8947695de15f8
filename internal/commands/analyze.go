package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ppiankov/floodspectre/internal/analyzer"
	"github.com/ppiankov/floodspectre/internal/config"
	"github.com/ppiankov/floodspectre/internal/metrics"
	"github.com/ppiankov/floodspectre/internal/project"
	"github.com/ppiankov/floodspectre/internal/report"
	"github.com/ppiankov/floodspectre/internal/source"
)

const defaultInput = "dpwh_flood_control_projects.csv"

var analyzeFlags struct {
	input                 string
	outputDir             string
	yearFrom              int
	yearTo                int
	minContractorProjects int
	topContractors        int
	highDelayDays         int
	reliabilityDelayDays  float64
	highRiskThreshold     float64
	yoyMaxYear            int
	xlsx                  bool
	chart                 bool
	print                 bool
	metricsFile           string
	profile               string
	region                string
	noProgress            bool
	timeout               time.Duration
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input]",
	Short: "Generate flood control project reports",
	Long: `Read the project dataset (CSV or XLSX, local or s3://bucket/key), keep the
projects funded in the selected years and export:

  report1_regional_summary.csv    regional flood mitigation efficiency
  report2_contractor_ranking.csv  top contractors by total cost with reliability index
  report3_annual_trends.csv       cost overrun trends per year and type of work
  summary.json                    global totals
  manifest.json                   run metadata

Malformed rows are skipped and counted. If no project falls inside the funding
years, nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	defaults := analyzer.DefaultConfig()
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.input, "input", "i", defaultInput, "Dataset path or s3://bucket/key")
	f.StringVarP(&analyzeFlags.outputDir, "output-dir", "o", ".", "Directory for exported reports")
	f.IntVar(&analyzeFlags.yearFrom, "year-from", project.DefaultYears.From, "First funding year to include")
	f.IntVar(&analyzeFlags.yearTo, "year-to", project.DefaultYears.To, "Last funding year to include")
	f.IntVar(&analyzeFlags.minContractorProjects, "min-projects", defaults.MinContractorProjects, "Minimum projects for a contractor to be ranked")
	f.IntVar(&analyzeFlags.topContractors, "top", defaults.TopContractors, "Number of contractors in the ranking")
	f.IntVar(&analyzeFlags.highDelayDays, "high-delay-days", defaults.HighDelayDays, "Delay in days above which a project counts as highly delayed")
	f.Float64Var(&analyzeFlags.reliabilityDelayDays, "reliability-delay-days", defaults.ReliabilityDelayDays, "Delay horizon of the reliability index")
	f.Float64Var(&analyzeFlags.highRiskThreshold, "high-risk-threshold", defaults.HighRiskThreshold, "Reliability index below which a contractor is flagged High Risk")
	f.IntVar(&analyzeFlags.yoyMaxYear, "yoy-max-year", defaults.YoYMaxYear, "Last funding year that gets a year-over-year change")
	f.BoolVar(&analyzeFlags.xlsx, "xlsx", false, "Also export all reports as an XLSX workbook")
	f.BoolVar(&analyzeFlags.chart, "chart", false, "Also export the overrun trend chart as PNG")
	f.BoolVar(&analyzeFlags.print, "print", false, "Print the reports as tables on stdout")
	f.StringVar(&analyzeFlags.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	f.StringVar(&analyzeFlags.profile, "profile", "", "AWS profile for s3:// input")
	f.StringVar(&analyzeFlags.region, "region", "", "AWS region for s3:// input")
	f.BoolVar(&analyzeFlags.noProgress, "no-progress", false, "Disable progress output")
	f.DurationVar(&analyzeFlags.timeout, "timeout", 5*time.Minute, "Run timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyAnalyzeConfigDefaults(cfg)
	if len(args) == 1 {
		analyzeFlags.input = args[0]
	}

	years := project.YearRange{From: analyzeFlags.yearFrom, To: analyzeFlags.yearTo}
	if years.From > years.To {
		return fmt.Errorf("invalid funding years %s: --year-from is after --year-to", years)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if analyzeFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeFlags.timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	log := slog.Default().With("run_id", runID)
	rec := metrics.New()
	prog := newProgress(cmd.ErrOrStderr(), !analyzeFlags.noProgress)

	opener := &source.Opener{Profile: analyzeFlags.profile, Region: analyzeFlags.region}
	in, err := opener.Open(ctx, analyzeFlags.input)
	if err != nil {
		return enhanceError("open input", err)
	}
	defer in.Close()
	log.Debug("Opened input", "uri", in.URI, "type", in.Type, "format", in.Format)

	rows, err := in.Rows()
	if err != nil {
		return enhanceError("read input", err)
	}

	prog.step("Processing dataset...")
	ds, err := project.Ingest(rows, years)
	if err != nil {
		prog.done("")
		return enhanceError("read input", err)
	}
	prog.done(fmt.Sprintf("  (%s rows loaded, %s filtered for %s)",
		report.FormatCount(ds.Parsed), report.FormatCount(ds.Retained()), years))

	rec.ObserveDataset(ds.Rows, ds.Dropped, ds.Retained())
	if ds.Dropped > 0 {
		log.Warn("Dropped malformed rows", "dropped", ds.Dropped, "rows", ds.Rows)
	}

	if ds.Empty() {
		log.Info("No projects in funding years; nothing to export", "years", years.String())
		return writeMetrics(rec, start)
	}

	result := analyzer.Analyze(ds.Records, analyzer.AnalyzerConfig{
		HighDelayDays:         analyzeFlags.highDelayDays,
		MinContractorProjects: analyzeFlags.minContractorProjects,
		TopContractors:        analyzeFlags.topContractors,
		ReliabilityDelayDays:  analyzeFlags.reliabilityDelayDays,
		HighRiskThreshold:     analyzeFlags.highRiskThreshold,
		YoYMaxYear:            analyzeFlags.yoyMaxYear,
	})
	log.Debug("Analysis complete",
		"regions", len(result.Regions),
		"contractors", len(result.Contractors),
		"trends", len(result.Trends))

	data := report.Data{
		Tool:      "floodspectre",
		Version:   version,
		RunID:     runID,
		Timestamp: time.Now().UTC(),
		Target: report.Target{
			Type:    in.Type,
			URI:     in.URI,
			URIHash: computeTargetHash(in.Type, in.URI),
		},
		Config: report.ReportConfig{
			YearFrom:              years.From,
			YearTo:                years.To,
			MinContractorProjects: analyzeFlags.minContractorProjects,
			TopContractors:        analyzeFlags.topContractors,
			HighDelayDays:         analyzeFlags.highDelayDays,
			ReliabilityDelayDays:  analyzeFlags.reliabilityDelayDays,
			HighRiskThreshold:     analyzeFlags.highRiskThreshold,
			YoYMaxYear:            analyzeFlags.yoyMaxYear,
		},
		Counts: report.Counts{
			Rows:     ds.Rows,
			Parsed:   ds.Parsed,
			Dropped:  ds.Dropped,
			Retained: ds.Retained(),
		},
		Result: result,
	}

	if analyzeFlags.print {
		if err := (&report.TextReporter{Writer: cmd.OutOrStdout()}).Generate(data); err != nil {
			return fmt.Errorf("print reports: %w", err)
		}
	}

	prog.line("")
	prog.step("Generating reports...")
	prog.done("")

	exporter := &report.Exporter{
		Dir:   analyzeFlags.outputDir,
		XLSX:  analyzeFlags.xlsx,
		Chart: analyzeFlags.chart,
		OnWrite: func(o report.Output, path string) {
			rec.ReportWritten(o.File)
			log.Debug("Wrote report", "file", path)
			switch o.Kind {
			case report.KindReport:
				prog.line(fmt.Sprintf("%s (exported to %s)", o.Title, o.File))
			case report.KindSummary:
				prog.line("")
				prog.step("Generating summary...")
				prog.done(fmt.Sprintf("  (exported to %s)", o.File))
			default:
				prog.line(fmt.Sprintf("%s (exported to %s)", o.Title, o.File))
			}
		},
	}
	if _, err := exporter.Export(data); err != nil {
		return enhanceError("export reports", err)
	}

	return writeMetrics(rec, start)
}

func writeMetrics(rec *metrics.Recorder, start time.Time) error {
	rec.ObserveDuration(time.Since(start))
	if analyzeFlags.metricsFile == "" {
		return nil
	}
	if err := rec.WriteFile(analyzeFlags.metricsFile); err != nil {
		return enhanceError("write metrics", err)
	}
	return nil
}

func applyAnalyzeConfigDefaults(cfg config.Config) {
	defaults := analyzer.DefaultConfig()

	if analyzeFlags.input == defaultInput && cfg.Input != "" {
		analyzeFlags.input = cfg.Input
	}
	if analyzeFlags.outputDir == "." && cfg.OutputDir != "" {
		analyzeFlags.outputDir = cfg.OutputDir
	}
	if analyzeFlags.yearFrom == project.DefaultYears.From && cfg.YearFrom > 0 {
		analyzeFlags.yearFrom = cfg.YearFrom
	}
	if analyzeFlags.yearTo == project.DefaultYears.To && cfg.YearTo > 0 {
		analyzeFlags.yearTo = cfg.YearTo
	}
	if analyzeFlags.minContractorProjects == defaults.MinContractorProjects && cfg.MinContractorProjects > 0 {
		analyzeFlags.minContractorProjects = cfg.MinContractorProjects
	}
	if analyzeFlags.topContractors == defaults.TopContractors && cfg.TopContractors > 0 {
		analyzeFlags.topContractors = cfg.TopContractors
	}
	if analyzeFlags.highDelayDays == defaults.HighDelayDays && cfg.HighDelayDays > 0 {
		analyzeFlags.highDelayDays = cfg.HighDelayDays
	}
	if analyzeFlags.reliabilityDelayDays == defaults.ReliabilityDelayDays && cfg.ReliabilityDelayDays > 0 {
		analyzeFlags.reliabilityDelayDays = cfg.ReliabilityDelayDays
	}
	if analyzeFlags.highRiskThreshold == defaults.HighRiskThreshold && cfg.HighRiskThreshold > 0 {
		analyzeFlags.highRiskThreshold = cfg.HighRiskThreshold
	}
	if analyzeFlags.yoyMaxYear == defaults.YoYMaxYear && cfg.YoYMaxYear > 0 {
		analyzeFlags.yoyMaxYear = cfg.YoYMaxYear
	}
	if !analyzeFlags.xlsx && cfg.XLSX {
		analyzeFlags.xlsx = true
	}
	if !analyzeFlags.chart && cfg.Chart {
		analyzeFlags.chart = true
	}
	if analyzeFlags.metricsFile == "" && cfg.MetricsFile != "" {
		analyzeFlags.metricsFile = cfg.MetricsFile
	}
	if analyzeFlags.profile == "" && cfg.Profile != "" {
		analyzeFlags.profile = cfg.Profile
	}
	if analyzeFlags.region == "" && cfg.Region != "" {
		analyzeFlags.region = cfg.Region
	}
	if analyzeFlags.timeout == 5*time.Minute {
		if d := cfg.TimeoutDuration(); d > 0 {
			analyzeFlags.timeout = d
		}
	}
}

// progress writes the console progress lines. Step labels are colored
// unless color is disabled (NO_COLOR or a non-terminal stderr).
type progress struct {
	w       io.Writer
	enabled bool
	label   *color.Color
}

func newProgress(w io.Writer, enabled bool) *progress {
	return &progress{w: w, enabled: enabled, label: color.New(color.FgCyan, color.Bold)}
}

func (p *progress) step(label string) {
	if p.enabled {
		p.label.Fprint(p.w, label)
	}
}

func (p *progress) done(detail string) {
	if p.enabled {
		fmt.Fprintln(p.w, detail)
	}
}

func (p *progress) line(s string) {
	if p.enabled {
		fmt.Fprintln(p.w, s)
	}
}
