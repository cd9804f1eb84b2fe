package lease

import (
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// RoundedSummary is a Summary rounded to cents for display.
type RoundedSummary struct {
	LeaseLiability       decimal.Decimal `json:"leaseLiability"`
	RightOfUseAsset      decimal.Decimal `json:"rightOfUseAsset"`
	ApproximateTotalCost decimal.Decimal `json:"approximateTotalCost"`
	MonthlyDepreciation  decimal.Decimal `json:"monthlyDepreciation"`
}

// RoundedRow is a Row rounded to cents for display.
type RoundedRow struct {
	Period             int             `json:"period"`
	Payment            decimal.Decimal `json:"payment"`
	InterestExpense    decimal.Decimal `json:"interestExpense"`
	PrincipalPayment   decimal.Decimal `json:"principalPayment"`
	RemainingLiability decimal.Decimal `json:"remainingLiability"`
	Depreciation       decimal.Decimal `json:"depreciation"`
	RemainingAsset     decimal.Decimal `json:"remainingAsset"`
}

// Rounded returns the summary rounded half away from zero to two places.
func (s Summary) Rounded() RoundedSummary {
	return RoundedSummary{
		LeaseLiability:       mathutil.ToCents(s.LeaseLiability),
		RightOfUseAsset:      mathutil.ToCents(s.RightOfUseAsset),
		ApproximateTotalCost: mathutil.ToCents(s.ApproximateTotalCost),
		MonthlyDepreciation:  mathutil.ToCents(s.MonthlyDepreciation),
	}
}

// Rounded returns the row rounded half away from zero to two places.
func (r Row) Rounded() RoundedRow {
	return RoundedRow{
		Period:             r.Period,
		Payment:            mathutil.ToCents(r.Payment),
		InterestExpense:    mathutil.ToCents(r.InterestExpense),
		PrincipalPayment:   mathutil.ToCents(r.PrincipalPayment),
		RemainingLiability: mathutil.ToCents(r.RemainingLiability),
		Depreciation:       mathutil.ToCents(r.Depreciation),
		RemainingAsset:     mathutil.ToCents(r.RemainingAsset),
	}
}

// RoundRows rounds every row of a schedule.
func RoundRows(rows []Row) []RoundedRow {
	rounded := make([]RoundedRow, len(rows))
	for i, row := range rows {
		rounded[i] = row.Rounded()
	}
	return rounded
}
