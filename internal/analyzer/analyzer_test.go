package analyzer

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/ppiankov/floodspectre/internal/project"
)

var start = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func rec(region, contractor string, year int, kind string, budget, cost float64, delayDays int) *project.Record {
	return project.New(project.Record{
		MainIsland:                "Luzon",
		Region:                    region,
		Contractor:                contractor,
		FundingYear:               year,
		TypeOfWork:                kind,
		ApprovedBudgetForContract: budget,
		ContractCost:              cost,
		StartDate:                 start,
		ActualCompletionDate:      start.AddDate(0, 0, delayDays),
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

func TestRegionalEfficiencyMetrics(t *testing.T) {
	records := []*project.Record{
		rec("A", "x", 2022, "dike", 100, 90, 10),
		rec("A", "x", 2022, "dike", 100, 80, 20),
		rec("A", "x", 2022, "dike", 100, 70, 40),
		rec("A", "x", 2022, "dike", 100, 60, 50),
		rec("B", "y", 2022, "dike", 200, 100, 10),
		rec("C", "z", 2022, "dike", 100, 50, 0),
	}

	rows := RegionalEfficiency(records, DefaultConfig())
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	wantOrder := []string{"B", "A", "C"}
	for i, want := range wantOrder {
		if rows[i].Region != want {
			t.Errorf("rows[%d].Region = %q, want %q", i, rows[i].Region, want)
		}
	}

	a := rows[1]
	if a.TotalBudget != 400 {
		t.Errorf("TotalBudget = %f, want 400", a.TotalBudget)
	}
	if a.MedianSavings != 20 {
		t.Errorf("MedianSavings = %f, want 20 (lower middle)", a.MedianSavings)
	}
	if a.AvgDelay != 30 {
		t.Errorf("AvgDelay = %f, want 30", a.AvgDelay)
	}
	if a.HighDelayPct != 50 {
		t.Errorf("HighDelayPct = %f, want 50", a.HighDelayPct)
	}
	if !almostEqual(a.EfficiencyScore, 66.6667) {
		t.Errorf("EfficiencyScore = %f, want 66.6667", a.EfficiencyScore)
	}
	if a.MainIsland != "Luzon" {
		t.Errorf("MainIsland = %q, want Luzon", a.MainIsland)
	}

	if rows[0].EfficiencyScore != 1000 {
		t.Errorf("B EfficiencyScore = %f, want 1000", rows[0].EfficiencyScore)
	}
	if rows[2].EfficiencyScore != 0 {
		t.Errorf("C EfficiencyScore = %f, want 0 for zero average delay", rows[2].EfficiencyScore)
	}
}

func TestRegionalEfficiencyStableTies(t *testing.T) {
	records := []*project.Record{
		rec("X", "c", 2022, "dike", 20, 10, 10),
		rec("Y", "c", 2022, "dike", 20, 10, 10),
		rec("Z", "c", 2022, "dike", 100, 10, 10),
	}

	rows := RegionalEfficiency(records, DefaultConfig())
	got := []string{rows[0].Region, rows[1].Region, rows[2].Region}
	want := []string{"Z", "X", "Y"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].EfficiencyScore > rows[i-1].EfficiencyScore {
			t.Errorf("rows not descending at %d: %f > %f", i, rows[i].EfficiencyScore, rows[i-1].EfficiencyScore)
		}
	}
}

func contractorRecords(name string, n int, budget, cost float64, delayDays int) []*project.Record {
	out := make([]*project.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rec("R", name, 2022, "dike", budget, cost, delayDays))
	}
	return out
}

func TestContractorRankingMinimumProjects(t *testing.T) {
	var records []*project.Record
	records = append(records, contractorRecords("four", 4, 100, 50, 0)...)
	records = append(records, contractorRecords("five", 5, 100, 50, 0)...)

	rows := ContractorRanking(records, DefaultConfig())
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Contractor != "five" {
		t.Errorf("Contractor = %q, want five", rows[0].Contractor)
	}
	if rows[0].NumProjects != 5 {
		t.Errorf("NumProjects = %d, want 5", rows[0].NumProjects)
	}
	if rows[0].Rank != 1 {
		t.Errorf("Rank = %d, want 1", rows[0].Rank)
	}
}

func TestContractorRankingKeepsLowestCostFifteen(t *testing.T) {
	var records []*project.Record
	for i := 20; i >= 1; i-- {
		cost := float64(i * 100)
		records = append(records, contractorRecords(fmt.Sprintf("c%02d", i), 5, cost*2, cost, 0)...)
	}

	rows := ContractorRanking(records, DefaultConfig())
	if len(rows) != 15 {
		t.Fatalf("rows = %d, want 15", len(rows))
	}
	if rows[0].Contractor != "c15" {
		t.Errorf("first row = %q, want c15", rows[0].Contractor)
	}
	if rows[14].Contractor != "c01" {
		t.Errorf("last row = %q, want c01", rows[14].Contractor)
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("rows[%d].Rank = %d, want %d", i, row.Rank, i+1)
		}
		if i > 0 && row.TotalCost > rows[i-1].TotalCost {
			t.Errorf("rows not in descending cost order at %d", i)
		}
	}
	if rows[0].TotalCost != 7500 {
		t.Errorf("c15 TotalCost = %f, want 7500", rows[0].TotalCost)
	}
}

func TestContractorReliabilityIndex(t *testing.T) {
	tests := []struct {
		name     string
		budget   float64
		cost     float64
		delay    int
		wantIdx  float64
		wantFlag string
	}{
		{"half schedule quarter savings", 100, 80, 45, 12.5, RiskHigh},
		{"on time full savings clamps to 100", 200, 100, 0, 100, RiskLow},
		{"late beyond horizon clamps to 0", 200, 100, 180, 0, RiskHigh},
		{"overrun clamps to 0", 100, 150, 0, 0, RiskHigh},
		{"exactly threshold", 150, 100, 0, 50, RiskLow},
		{"zero cost", 100, 0, 0, 0, RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ContractorRanking(contractorRecords("c", 5, tt.budget, tt.cost, tt.delay), DefaultConfig())
			if len(rows) != 1 {
				t.Fatalf("rows = %d, want 1", len(rows))
			}
			got := rows[0]
			if !almostEqual(got.ReliabilityIndex, tt.wantIdx) {
				t.Errorf("ReliabilityIndex = %f, want %f", got.ReliabilityIndex, tt.wantIdx)
			}
			if math.Signbit(got.ReliabilityIndex) {
				t.Errorf("ReliabilityIndex is negative zero")
			}
			if got.RiskFlag != tt.wantFlag {
				t.Errorf("RiskFlag = %q, want %q", got.RiskFlag, tt.wantFlag)
			}
		})
	}
}

func TestAnnualTrend(t *testing.T) {
	records := []*project.Record{
		rec("R", "c", 2021, "dike", 100, 90, 0),
		rec("R", "c", 2021, "dike", 100, 110, 0),
		rec("R", "c", 2021, "drain", 100, 70, 0),
		rec("R", "c", 2022, "dike", 100, 105, 0),
		rec("R", "c", 2020, "dike", 100, 80, 0),
	}

	rows := AnnualTrend(records, DefaultConfig())
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	want := []struct {
		year     int
		kind     string
		projects int
		avg      float64
		overrun  float64
		yoy      float64
	}{
		{2020, "dike", 1, 20, 0, 0},
		{2021, "drain", 1, 30, 0, 50},
		{2021, "dike", 2, 0, 50, -100},
		{2022, "dike", 1, -5, 100, 0},
	}
	for i, w := range want {
		got := rows[i]
		if got.FundingYear != w.year || got.TypeOfWork != w.kind {
			t.Errorf("rows[%d] = (%d, %s), want (%d, %s)", i, got.FundingYear, got.TypeOfWork, w.year, w.kind)
			continue
		}
		if got.TotalProjects != w.projects {
			t.Errorf("rows[%d].TotalProjects = %d, want %d", i, got.TotalProjects, w.projects)
		}
		if !almostEqual(got.AvgSavings, w.avg) {
			t.Errorf("rows[%d].AvgSavings = %f, want %f", i, got.AvgSavings, w.avg)
		}
		if !almostEqual(got.OverrunRate, w.overrun) {
			t.Errorf("rows[%d].OverrunRate = %f, want %f", i, got.OverrunRate, w.overrun)
		}
		if !almostEqual(got.YoYChange, w.yoy) {
			t.Errorf("rows[%d].YoYChange = %f, want %f", i, got.YoYChange, w.yoy)
		}
	}
}

func TestAnnualTrendNoPreviousYear(t *testing.T) {
	records := []*project.Record{
		rec("R", "c", 2020, "dike", 100, 80, 0),
		rec("R", "c", 2021, "dike", 100, 90, 0),
	}
	cfg := DefaultConfig()
	cfg.YoYMaxYear = 2020

	rows := AnnualTrend(records, cfg)
	for _, r := range rows {
		if r.YoYChange != 0 {
			t.Errorf("%d %s YoYChange = %f, want 0", r.FundingYear, r.TypeOfWork, r.YoYChange)
		}
	}
}

func TestAnnualTrendZeroPreviousAverage(t *testing.T) {
	records := []*project.Record{
		rec("R", "c", 2020, "dike", 100, 100, 0),
		rec("R", "c", 2021, "dike", 100, 90, 0),
	}

	rows := AnnualTrend(records, DefaultConfig())
	if rows[1].YoYChange != 0 {
		t.Errorf("YoYChange = %f, want 0 when previous average is zero", rows[1].YoYChange)
	}
}

func TestGlobalSummary(t *testing.T) {
	records := []*project.Record{
		rec("A", "alpha", 2021, "dike", 100, 90, 10),
		rec("A", "beta", 2022, "dike", 100, 120, 20),
		rec("B", "alpha", 2023, "drain", 100, 50, 30),
	}

	s := GlobalSummary(records)
	if s.TotalProjects != 3 {
		t.Errorf("TotalProjects = %d, want 3", s.TotalProjects)
	}
	if s.TotalContractors != 2 {
		t.Errorf("TotalContractors = %d, want 2", s.TotalContractors)
	}
	if s.GlobalAvgDelay != 20 {
		t.Errorf("GlobalAvgDelay = %f, want 20", s.GlobalAvgDelay)
	}
	if s.TotalSavings != 40 {
		t.Errorf("TotalSavings = %f, want 40", s.TotalSavings)
	}
}

func TestGlobalSummaryEmpty(t *testing.T) {
	s := GlobalSummary(nil)
	if s.TotalProjects != 0 || s.TotalContractors != 0 || s.GlobalAvgDelay != 0 || s.TotalSavings != 0 {
		t.Errorf("GlobalSummary(nil) = %+v, want zero value", s)
	}
}

func TestAnalyzeRunsEveryReport(t *testing.T) {
	records := contractorRecords("c", 5, 100, 90, 5)
	records = append(records, rec("B", "d", 2023, "drain", 50, 60, 40))

	result := Analyze(records, DefaultConfig())
	if len(result.Regions) != 2 {
		t.Errorf("Regions = %d, want 2", len(result.Regions))
	}
	if len(result.Contractors) != 1 {
		t.Errorf("Contractors = %d, want 1", len(result.Contractors))
	}
	if len(result.Trends) != 2 {
		t.Errorf("Trends = %d, want 2", len(result.Trends))
	}
	if result.Summary.TotalProjects != 6 {
		t.Errorf("TotalProjects = %d, want 6", result.Summary.TotalProjects)
	}
}

func TestAnalyzeDoesNotMutateRecords(t *testing.T) {
	records := []*project.Record{
		rec("B", "c", 2022, "dike", 100, 10, 1),
		rec("A", "c", 2021, "dike", 100, 90, 1),
	}
	before := []*project.Record{records[0], records[1]}

	Analyze(records, DefaultConfig())
	for i := range records {
		if records[i] != before[i] {
			t.Fatalf("record order changed at %d", i)
		}
	}
}
