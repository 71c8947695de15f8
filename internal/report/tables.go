package report

import (
	"fmt"
	"strconv"

	"github.com/ppiankov/floodspectre/internal/analyzer"
)

// count is an integer rendered with thousands separators. Plain ints (years,
// ranks) are rendered as-is.
type count int

type table struct {
	sheet  string
	header []string
	rows   [][]any
}

func tableFor(t Table, result *analyzer.AnalysisResult) table {
	switch t {
	case Regional:
		return regionalTable(result.Regions)
	case Contractors:
		return contractorTable(result.Contractors)
	default:
		return trendTable(result.Trends)
	}
}

func regionalTable(rows []analyzer.RegionEfficiency) table {
	t := table{
		sheet:  "Regional",
		header: []string{"Region", "MainIsland", "TotalBudget", "MedianSavings", "AvgDelay", "HighDelayPct", "EfficiencyScore"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.Region, r.MainIsland, r.TotalBudget, r.MedianSavings, r.AvgDelay, r.HighDelayPct, r.EfficiencyScore})
	}
	return t
}

func contractorTable(rows []analyzer.ContractorPerformance) table {
	t := table{
		sheet:  "Contractors",
		header: []string{"Rank", "Contractor", "TotalCost", "NumProjects", "AvgDelay", "TotalSavings", "ReliabilityIndex", "RiskFlag"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.Rank, r.Contractor, r.TotalCost, count(r.NumProjects), r.AvgDelay, r.TotalSavings, r.ReliabilityIndex, r.RiskFlag})
	}
	return t
}

func trendTable(rows []analyzer.OverrunTrend) table {
	t := table{
		sheet:  "Trends",
		header: []string{"FundingYear", "TypeOfWork", "TotalProjects", "AvgSavings", "OverrunRate", "YoYChange"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.FundingYear, r.TypeOfWork, count(r.TotalProjects), r.AvgSavings, r.OverrunRate, r.YoYChange})
	}
	return t
}

// formatted returns the rows as display strings.
func (t table) formatted() [][]string {
	out := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		out = append(out, cells)
	}
	return out
}

func formatCell(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case count:
		return FormatCount(int(v))
	case float64:
		return FormatFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

// numericCell keeps numbers numeric for spreadsheet output.
func numericCell(v any) any {
	switch v := v.(type) {
	case count:
		return int(v)
	case float64:
		return Round2(v)
	default:
		return v
	}
}
