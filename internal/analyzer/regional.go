package analyzer

import (
	"sort"

	"github.com/ppiankov/floodspectre/internal/aggregate"
	"github.com/ppiankov/floodspectre/internal/project"
)

// RegionalEfficiency ranks regions by efficiency score, the median cost
// savings per day of average delay, scaled by 100. Regions with equal scores
// keep the order in which they first appear in records.
func RegionalEfficiency(records []*project.Record, cfg AnalyzerConfig) []RegionEfficiency {
	summaries := aggregate.Summarize(records,
		func(r *project.Record) string { return r.Region },
		aggregate.Sum(metricTotalBudget, budget),
		aggregate.Median(metricMedianSavings, savings),
		aggregate.Mean(metricAvgDelay, delay),
		aggregate.Percent(metricHighDelayPct, func(r *project.Record) bool {
			return r.CompletionDelayDays() > cfg.HighDelayDays
		}),
		aggregate.Ratio[*project.Record](metricEfficiency, metricMedianSavings, metricAvgDelay),
	)

	rows := make([]RegionEfficiency, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, RegionEfficiency{
			Region:          s.Key,
			MainIsland:      s.First.MainIsland,
			TotalBudget:     s.Values[metricTotalBudget],
			MedianSavings:   s.Values[metricMedianSavings],
			AvgDelay:        s.Values[metricAvgDelay],
			HighDelayPct:    s.Values[metricHighDelayPct],
			EfficiencyScore: s.Values[metricEfficiency] * 100,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EfficiencyScore > rows[j].EfficiencyScore
	})
	return rows
}
