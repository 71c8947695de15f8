// Package analyzer computes the regional, contractor, trend and summary
// reports from a filtered set of project records. Every report is a pure
// function of the record slice, which is never modified.
package analyzer

import (
	"github.com/ppiankov/floodspectre/internal/project"
)

// Metric names shared by the report generators.
const (
	metricTotalBudget   = "total_budget"
	metricTotalCost     = "total_cost"
	metricTotalSavings  = "total_savings"
	metricMedianSavings = "median_savings"
	metricAvgSavings    = "avg_savings"
	metricAvgDelay      = "avg_delay"
	metricHighDelayPct  = "high_delay_pct"
	metricOverrunRate   = "overrun_rate"
	metricEfficiency    = "efficiency"
	metricSavingsRatio  = "savings_ratio"
	metricProjects      = "projects"
	metricContractors   = "contractors"
)

// Analyze runs every report over records.
func Analyze(records []*project.Record, cfg AnalyzerConfig) *AnalysisResult {
	return &AnalysisResult{
		Regions:     RegionalEfficiency(records, cfg),
		Contractors: ContractorRanking(records, cfg),
		Trends:      AnnualTrend(records, cfg),
		Summary:     GlobalSummary(records),
	}
}

func budget(r *project.Record) float64 { return r.ApprovedBudgetForContract }
func cost(r *project.Record) float64 { return r.ContractCost }
func savings(r *project.Record) float64 { return r.CostSavings() }
func delay(r *project.Record) float64 { return float64(r.CompletionDelayDays()) }
