package analyzer

import (
	"math"
	"slices"
	"sort"

	"github.com/ppiankov/floodspectre/internal/aggregate"
	"github.com/ppiankov/floodspectre/internal/project"
)

// ContractorRanking scores contractors with at least cfg.MinContractorProjects
// projects. The cfg.TopContractors contractors with the lowest total contract
// cost are kept and listed from highest to lowest cost, ranked 1..n in that
// order.
func ContractorRanking(records []*project.Record, cfg AnalyzerConfig) []ContractorPerformance {
	summaries := aggregate.Summarize(records,
		func(r *project.Record) string { return r.Contractor },
		aggregate.Sum(metricTotalCost, cost),
		aggregate.Mean(metricAvgDelay, delay),
		aggregate.Sum(metricTotalSavings, savings),
		aggregate.Ratio[*project.Record](metricSavingsRatio, metricTotalSavings, metricTotalCost),
	)

	var rows []ContractorPerformance
	for _, s := range summaries {
		if s.Count < cfg.MinContractorProjects {
			continue
		}

		idx := reliabilityIndex(s.Values[metricAvgDelay], s.Values[metricSavingsRatio], cfg.ReliabilityDelayDays)
		flag := RiskLow
		if idx < cfg.HighRiskThreshold {
			flag = RiskHigh
		}

		rows = append(rows, ContractorPerformance{
			Contractor:       s.Key,
			TotalCost:        s.Values[metricTotalCost],
			NumProjects:      s.Count,
			AvgDelay:         s.Values[metricAvgDelay],
			TotalSavings:     s.Values[metricTotalSavings],
			ReliabilityIndex: idx,
			RiskFlag:         flag,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalCost < rows[j].TotalCost
	})
	if cfg.TopContractors >= 0 && len(rows) > cfg.TopContractors {
		rows = rows[:cfg.TopContractors]
	}
	slices.Reverse(rows)

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// reliabilityIndex combines schedule performance with the savings ratio. The
// raw score is clamped to [0, 100] first and the absolute value taken after,
// which only matters for a negative zero.
func reliabilityIndex(avgDelay, savingsRatio, delayHorizon float64) float64 {
	raw := (1 - aggregate.SafeDiv(avgDelay, delayHorizon)) * savingsRatio * 100
	return math.Abs(max(0, min(raw, 100)))
}
