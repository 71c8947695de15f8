// Package project holds the infrastructure-project record model and the
// ingestion pipeline that turns raw tabular rows into filtered records.
package project

import "time"

// DateLayout is the calendar date format used by the dataset.
const DateLayout = "2006-01-02"

// Record is one infrastructure project. Records are immutable once built by
// New; the derived metrics are computed there and never recomputed.
type Record struct {
	MainIsland                 string
	Region                     string
	Province                   string
	LegislativeDistrict        string
	Municipality               string
	DistrictEngineeringOffice  string
	ProjectID                  string
	ProjectName                string
	TypeOfWork                 string
	FundingYear                int `validate:"gte=0"`
	ContractID                 string
	ApprovedBudgetForContract  float64 `validate:"finite,gte=0"`
	ContractCost               float64 `validate:"finite,gte=0"`
	ActualCompletionDate       time.Time
	Contractor                 string
	StartDate                  time.Time
	ProjectLatitude            float64
	ProjectLongitude           float64
	ProvincialCapital          string
	ProvincialCapitalLatitude  float64
	ProvincialCapitalLongitude float64

	costSavings         float64
	completionDelayDays int
}

// New returns a copy of r with its derived metrics filled in.
func New(r Record) *Record {
	r.costSavings = r.ApprovedBudgetForContract - r.ContractCost
	r.completionDelayDays = daysBetween(r.StartDate, r.ActualCompletionDate)
	return &r
}

// CostSavings is the approved budget minus the contract cost. A negative
// value is a cost overrun.
func (r *Record) CostSavings() float64 {
	return r.costSavings
}

// CompletionDelayDays is the signed number of days from the start date to the
// actual completion date.
func (r *Record) CompletionDelayDays() int {
	return r.completionDelayDays
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts calendar days on Unix seconds; a time.Duration would
// saturate for dates more than about 292 years apart.
func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
