package disclosure

import (
	"errors"
	"fmt"

	"github.com/iwvelando/lease-amortization/pkg/lease"
)

// ErrPeriodOutOfRange indicates a disclosure window outside the schedule.
var ErrPeriodOutOfRange = errors.New("period out of range")

// Period holds the roll-forward of the lease balances across a window of
// schedule periods.
type Period struct {
	FromPeriod              int     `json:"fromPeriod"`
	ToPeriod                int     `json:"toPeriod"`
	OpeningLiability        float64 `json:"openingLiability"`
	FinanceCost             float64 `json:"financeCost"`
	Payments                float64 `json:"payments"`
	ClosingLiability        float64 `json:"closingLiability"`
	Depreciation            float64 `json:"depreciation"`
	AccumulatedDepreciation float64 `json:"accumulatedDepreciation"`
	RightOfUseAsset         float64 `json:"rightOfUseAsset"`
}

// PeriodDisclosure summarises periods from..to (1-based, inclusive) of rows.
// Opening and closing balances use the reported, clamped values.
func PeriodDisclosure(summary lease.Summary, rows []lease.Row, from, to int) (Period, error) {
	if from < 1 || to < from || to > len(rows) {
		return Period{}, fmt.Errorf("periods %d-%d with %d rows: %w", from, to, len(rows), ErrPeriodOutOfRange)
	}

	d := Period{
		FromPeriod:       from,
		ToPeriod:         to,
		OpeningLiability: summary.LeaseLiability,
	}
	if from > 1 {
		d.OpeningLiability = rows[from-2].RemainingLiability
	}

	for _, row := range rows[from-1 : to] {
		d.FinanceCost += row.InterestExpense
		d.Payments += row.Payment
		d.Depreciation += row.Depreciation
	}

	closing := rows[to-1]
	d.ClosingLiability = closing.RemainingLiability
	d.RightOfUseAsset = closing.RemainingAsset
	d.AccumulatedDepreciation = summary.RightOfUseAsset - closing.RemainingAsset
	return d, nil
}
