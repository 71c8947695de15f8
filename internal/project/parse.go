package project

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Column names of the input dataset, in file order.
const (
	ColMainIsland                 = "MainIsland"
	ColRegion                     = "Region"
	ColProvince                   = "Province"
	ColLegislativeDistrict        = "LegislativeDistrict"
	ColMunicipality               = "Municipality"
	ColDistrictEngineeringOffice  = "DistrictEngineeringOffice"
	ColProjectID                  = "ProjectId"
	ColProjectName                = "ProjectName"
	ColTypeOfWork                 = "TypeOfWork"
	ColFundingYear                = "FundingYear"
	ColContractID                 = "ContractId"
	ColApprovedBudgetForContract  = "ApprovedBudgetForContract"
	ColContractCost               = "ContractCost"
	ColActualCompletionDate       = "ActualCompletionDate"
	ColContractor                 = "Contractor"
	ColStartDate                  = "StartDate"
	ColProjectLatitude            = "ProjectLatitude"
	ColProjectLongitude           = "ProjectLongitude"
	ColProvincialCapital          = "ProvincialCapital"
	ColProvincialCapitalLatitude  = "ProvincialCapitalLatitude"
	ColProvincialCapitalLongitude = "ProvincialCapitalLongitude"
)

// Columns lists every column a row must carry.
var Columns = []string{
	ColMainIsland,
	ColRegion,
	ColProvince,
	ColLegislativeDistrict,
	ColMunicipality,
	ColDistrictEngineeringOffice,
	ColProjectID,
	ColProjectName,
	ColTypeOfWork,
	ColFundingYear,
	ColContractID,
	ColApprovedBudgetForContract,
	ColContractCost,
	ColActualCompletionDate,
	ColContractor,
	ColStartDate,
	ColProjectLatitude,
	ColProjectLongitude,
	ColProvincialCapital,
	ColProvincialCapitalLatitude,
	ColProvincialCapitalLongitude,
}

// ErrMissingColumn is returned when a row lacks a required column.
var ErrMissingColumn = errors.New("missing column")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Parse converts a raw row into a Record. Typed fields are coerced strictly:
// surrounding whitespace, empty values and malformed numbers or dates all
// fail the row.
func Parse(row map[string]string) (*Record, error) {
	p := rowParser{row: row}

	r := Record{
		MainIsland:                 p.str(ColMainIsland),
		Region:                     p.str(ColRegion),
		Province:                   p.str(ColProvince),
		LegislativeDistrict:        p.str(ColLegislativeDistrict),
		Municipality:               p.str(ColMunicipality),
		DistrictEngineeringOffice:  p.str(ColDistrictEngineeringOffice),
		ProjectID:                  p.str(ColProjectID),
		ProjectName:                p.str(ColProjectName),
		TypeOfWork:                 p.str(ColTypeOfWork),
		FundingYear:                p.int(ColFundingYear),
		ContractID:                 p.str(ColContractID),
		ApprovedBudgetForContract:  p.float(ColApprovedBudgetForContract),
		ContractCost:               p.float(ColContractCost),
		ActualCompletionDate:       p.date(ColActualCompletionDate),
		Contractor:                 p.str(ColContractor),
		StartDate:                  p.date(ColStartDate),
		ProjectLatitude:            p.float(ColProjectLatitude),
		ProjectLongitude:           p.float(ColProjectLongitude),
		ProvincialCapital:          p.str(ColProvincialCapital),
		ProvincialCapitalLatitude:  p.float(ColProvincialCapitalLatitude),
		ProvincialCapitalLongitude: p.float(ColProvincialCapitalLongitude),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := validate.Struct(&r); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}
	return New(r), nil
}

// rowParser records the first coercion failure and turns later lookups into
// no-ops.
type rowParser struct {
	row map[string]string
	err error
}

func (p *rowParser) raw(col string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.row[col]
	if !ok {
		p.err = fmt.Errorf("%w: %s", ErrMissingColumn, col)
		return "", false
	}
	return v, true
}

func (p *rowParser) str(col string) string {
	v, _ := p.raw(col)
	return v
}

func (p *rowParser) int(col string) int {
	v, ok := p.raw(col)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return n
}

func (p *rowParser) float(col string) float64 {
	v, ok := p.raw(col)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return f
}

func (p *rowParser) date(col string) time.Time {
	v, ok := p.raw(col)
	if !ok {
		return time.Time{}
	}
	d, err := time.Parse(DateLayout, v)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return d
}
