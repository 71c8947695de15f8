package analyzer

import (
	"sort"

	"github.com/ppiankov/floodspectre/internal/aggregate"
	"github.com/ppiankov/floodspectre/internal/project"
)

type trendKey struct {
	year       int
	typeOfWork string
}

// AnnualTrend summarizes cost overruns per funding year and type of work.
// Rows are ordered by year ascending, then by average savings descending.
//
// The year-over-year change compares a row's average savings with the
// average savings recorded for the previous year, where the previous year's
// value is the last row of that year in sorted order (its lowest average).
// It is only computed for years up to cfg.YoYMaxYear and is 0 when the
// previous year has no rows.
func AnnualTrend(records []*project.Record, cfg AnalyzerConfig) []OverrunTrend {
	summaries := aggregate.Summarize(records,
		func(r *project.Record) trendKey { return trendKey{r.FundingYear, r.TypeOfWork} },
		aggregate.Mean(metricAvgSavings, savings),
		aggregate.Percent(metricOverrunRate, func(r *project.Record) bool {
			return r.CostSavings() < 0
		}),
	)

	rows := make([]OverrunTrend, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, OverrunTrend{
			FundingYear:   s.Key.year,
			TypeOfWork:    s.Key.typeOfWork,
			TotalProjects: s.Count,
			AvgSavings:    s.Values[metricAvgSavings],
			OverrunRate:   s.Values[metricOverrunRate],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FundingYear != rows[j].FundingYear {
			return rows[i].FundingYear < rows[j].FundingYear
		}
		return rows[i].AvgSavings > rows[j].AvgSavings
	})

	avgByYear := make(map[int]float64, len(rows))
	for _, r := range rows {
		avgByYear[r.FundingYear] = r.AvgSavings
	}

	for i := range rows {
		if rows[i].FundingYear > cfg.YoYMaxYear {
			continue
		}
		prev, ok := avgByYear[rows[i].FundingYear-1]
		if !ok {
			continue
		}
		rows[i].YoYChange = aggregate.SafeDiv(rows[i].AvgSavings-prev, prev) * 100
	}
	return rows
}
