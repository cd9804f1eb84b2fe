// Package lease computes IFRS 16 lease liabilities, right-of-use assets and
// monthly amortization schedules for a single lease under flat-rate assumptions.
//
// Every function in this package is a pure function of its arguments. Rates are
// nominal annual percentages converted to monthly rates by flat division by 12,
// and every period is one month regardless of the contract's declared payment
// frequency.
package lease

import (
	"github.com/iwvelando/lease-amortization/pkg/constants"
)

// Parameters holds the inputs for one lease calculation.
type Parameters struct {
	InitialMonthlyRent          float64 `json:"initialMonthlyRent"`
	TermMonths                  int     `json:"termMonths"`
	AnnualDiscountRatePercent   float64 `json:"annualDiscountRatePercent"`
	AnnualEscalationRatePercent float64 `json:"annualEscalationRatePercent"`
	InitialDirectCosts          float64 `json:"initialDirectCosts"`
}

// Summary holds the figures recognised at commencement.
type Summary struct {
	LeaseLiability       float64 `json:"leaseLiability"`
	RightOfUseAsset      float64 `json:"rightOfUseAsset"`
	ApproximateTotalCost float64 `json:"approximateTotalCost"`
	MonthlyDepreciation  float64 `json:"monthlyDepreciation"`
}

// Row is one period of an amortization schedule. RemainingLiability and
// RemainingAsset are reported clamped at zero.
type Row struct {
	Period             int     `json:"period"`
	Payment            float64 `json:"payment"`
	InterestExpense    float64 `json:"interestExpense"`
	PrincipalPayment   float64 `json:"principalPayment"`
	RemainingLiability float64 `json:"remainingLiability"`
	Depreciation       float64 `json:"depreciation"`
	RemainingAsset     float64 `json:"remainingAsset"`
}

// TableOptions controls how the amortization table is derived.
type TableOptions struct {
	// MaxRows caps the number of rows. Zero selects DefaultMaxRows and a
	// negative value covers the full term.
	MaxRows int `json:"maxRows" yaml:"maxRows" mapstructure:"maxRows"`

	// UseEscalatedPayments pays the escalated rent for each period instead of
	// the flat initial rent.
	UseEscalatedPayments bool `json:"useEscalatedPayments" yaml:"useEscalatedPayments" mapstructure:"useEscalatedPayments"`
}

// DefaultTableOptions returns the options matching the reference schedule:
// twelve rows of flat rent.
func DefaultTableOptions() TableOptions {
	return TableOptions{MaxRows: constants.DefaultMaxRows}
}

// FullTermOptions returns options covering every period with the given payment basis.
func FullTermOptions(escalated bool) TableOptions {
	return TableOptions{MaxRows: constants.FullTerm, UseEscalatedPayments: escalated}
}

// RowLimit returns the number of rows produced for a lease of the given term.
func (o TableOptions) RowLimit(termMonths int) int {
	limit := o.MaxRows
	if limit == 0 {
		limit = constants.DefaultMaxRows
	}
	if limit < 0 || limit > termMonths {
		return termMonths
	}
	return limit
}

// Result bundles a summary with its derived schedule.
type Result struct {
	Parameters Parameters `json:"parameters"`
	Summary    Summary    `json:"summary"`
	Rows       []Row      `json:"rows"`
}
