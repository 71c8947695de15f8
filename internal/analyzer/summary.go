package analyzer

import (
	"github.com/ppiankov/floodspectre/internal/aggregate"
	"github.com/ppiankov/floodspectre/internal/project"
)

// GlobalSummary computes statistics over the whole record set.
func GlobalSummary(records []*project.Record) Summary {
	s := aggregate.Reduce(aggregate.Group[struct{}, *project.Record]{Items: records},
		aggregate.Count[*project.Record](metricProjects),
		aggregate.Distinct(metricContractors, func(r *project.Record) string { return r.Contractor }),
		aggregate.Mean(metricAvgDelay, delay),
		aggregate.Sum(metricTotalSavings, savings),
	)

	return Summary{
		TotalProjects:    int(s.Values[metricProjects]),
		TotalContractors: int(s.Values[metricContractors]),
		GlobalAvgDelay:   s.Values[metricAvgDelay],
		TotalSavings:     s.Values[metricTotalSavings],
	}
}
