package analyzer

// Risk flags assigned to contractors.
const (
	RiskHigh = "High Risk"
	RiskLow  = "Low Risk"
)

// RegionEfficiency is one row of the regional efficiency report.
type RegionEfficiency struct {
	Region          string
	MainIsland      string
	TotalBudget     float64
	MedianSavings   float64
	AvgDelay        float64
	HighDelayPct    float64
	EfficiencyScore float64
}

// ContractorPerformance is one row of the contractor ranking.
type ContractorPerformance struct {
	Rank             int
	Contractor       string
	TotalCost        float64
	NumProjects      int
	AvgDelay         float64
	TotalSavings     float64
	ReliabilityIndex float64
	RiskFlag         string
}

// OverrunTrend is one (funding year, type of work) row of the annual trend.
type OverrunTrend struct {
	FundingYear   int
	TypeOfWork    string
	TotalProjects int
	AvgSavings    float64
	OverrunRate   float64
	YoYChange     float64
}

// Summary holds dataset-wide statistics.
type Summary struct {
	TotalProjects    int     `json:"TotalProjects"`
	TotalContractors int     `json:"TotalContractors"`
	GlobalAvgDelay   float64 `json:"GlobalAvgDelay"`
	TotalSavings     float64 `json:"TotalSavings"`
}

// AnalysisResult bundles every report computed from one dataset.
type AnalysisResult struct {
	Regions     []RegionEfficiency
	Contractors []ContractorPerformance
	Trends      []OverrunTrend
	Summary     Summary
}

// AnalyzerConfig controls report thresholds.
type AnalyzerConfig struct {
	// HighDelayDays is the delay above which a project counts as highly delayed.
	HighDelayDays int
	// MinContractorProjects excludes contractors with fewer projects.
	MinContractorProjects int
	// TopContractors caps the contractor ranking.
	TopContractors int
	// ReliabilityDelayDays is the delay at which the schedule factor of the
	// reliability index reaches zero.
	ReliabilityDelayDays float64
	// HighRiskThreshold is the reliability index below which a contractor is
	// flagged high risk.
	HighRiskThreshold float64
	// YoYMaxYear is the last funding year for which a year-over-year change
	// is computed.
	YoYMaxYear int
}

// DefaultConfig returns the thresholds used by the published reports.
func DefaultConfig() AnalyzerConfig {
	return AnalyzerConfig{
		HighDelayDays:         30,
		MinContractorProjects: 5,
		TopContractors:        15,
		ReliabilityDelayDays:  90,
		HighRiskThreshold:     50,
		YoYMaxYear:            2021,
	}
}
