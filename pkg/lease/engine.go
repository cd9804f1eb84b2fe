package lease

import (
	"fmt"
	"iter"
	"math"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
)

// Validate checks the calculation preconditions. Discount and escalation rates
// are accepted as given, including negative values.
func (p Parameters) Validate() error {
	if p.TermMonths <= 0 || p.TermMonths > constants.MaxTermMonths {
		return invalid("termMonths", p.TermMonths, ErrInvalidTerm)
	}
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"initialMonthlyRent", p.InitialMonthlyRent},
		{"annualDiscountRatePercent", p.AnnualDiscountRatePercent},
		{"annualEscalationRatePercent", p.AnnualEscalationRatePercent},
		{"initialDirectCosts", p.InitialDirectCosts},
	} {
		if !mathutil.IsFinite(field.value) {
			return invalid(field.name, field.value, ErrNonNumericInput)
		}
	}
	if p.InitialMonthlyRent < 0 {
		return invalid("initialMonthlyRent", p.InitialMonthlyRent, ErrInvalidRent)
	}
	if p.InitialDirectCosts < 0 {
		return invalid("initialDirectCosts", p.InitialDirectCosts, ErrInvalidDirectCosts)
	}
	return nil
}

// MonthlyDiscountRate returns the flat monthly discount rate.
func (p Parameters) MonthlyDiscountRate() float64 {
	return mathutil.MonthlyRate(p.AnnualDiscountRatePercent)
}

// MonthlyEscalationRate returns the flat monthly rent growth rate.
func (p Parameters) MonthlyEscalationRate() float64 {
	return mathutil.MonthlyRate(p.AnnualEscalationRatePercent)
}

// RentAt returns the escalated rent due in the given 1-based period.
func (p Parameters) RentAt(period int) float64 {
	return p.InitialMonthlyRent * math.Pow(1+p.MonthlyEscalationRate(), float64(period-1))
}

// ComputeSummary discounts every scheduled rent to commencement and derives the
// right-of-use asset, the approximate total cost and straight-line depreciation.
func ComputeSummary(p Parameters) (Summary, error) {
	if err := p.Validate(); err != nil {
		return Summary{}, err
	}

	monthlyDiscount := p.MonthlyDiscountRate()

	var liability float64
	for i := 1; i <= p.TermMonths; i++ {
		liability += p.RentAt(i) / math.Pow(1+monthlyDiscount, float64(i))
	}

	rightOfUse := liability + p.InitialDirectCosts
	summary := Summary{
		LeaseLiability:       liability,
		RightOfUseAsset:      rightOfUse,
		ApproximateTotalCost: ApproximateTotalCost(p),
		MonthlyDepreciation:  rightOfUse / float64(p.TermMonths),
	}

	if !summary.finite() {
		return Summary{}, fmt.Errorf("discount rate %.4f%%: %w", p.AnnualDiscountRatePercent, ErrNonFiniteResult)
	}
	return summary, nil
}

// ApproximateTotalCost estimates total nominal rent assuming linear growth:
// rent * term * (1 + escalation * term / 24). It diverges from the true sum of
// escalated rents for long terms or high escalation; see TotalNominalPayments.
func ApproximateTotalCost(p Parameters) float64 {
	escalation := p.AnnualEscalationRatePercent / constants.PercentageMultiplier
	term := float64(p.TermMonths)
	return p.InitialMonthlyRent * term * (1 + escalation*term/constants.EscalationApproximationDivisor)
}

// TotalNominalPayments sums the escalated rent of every period in the term.
func TotalNominalPayments(p Parameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	var total float64
	for i := 1; i <= p.TermMonths; i++ {
		total += p.RentAt(i)
	}
	if !mathutil.IsFinite(total) {
		return 0, fmt.Errorf("escalation rate %.4f%%: %w", p.AnnualEscalationRatePercent, ErrNonFiniteResult)
	}
	return total, nil
}

// ComputeAmortizationTable returns the amortization rows derived from a summary.
// The returned sequence is lazy and can be ranged over repeatedly; every pass
// starts again from the summary balances and yields identical rows.
//
// Interest accrues on the unclamped running liability. Reported balances are
// clamped at zero but the unclamped values carry into the next period.
func ComputeAmortizationTable(p Parameters, s Summary, opts TableOptions) (iter.Seq[Row], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !s.finite() {
		return nil, fmt.Errorf("summary: %w", ErrNonFiniteResult)
	}

	monthlyDiscount := p.MonthlyDiscountRate()
	rows := opts.RowLimit(p.TermMonths)

	return func(yield func(Row) bool) {
		remainingLiability := s.LeaseLiability
		remainingAsset := s.RightOfUseAsset

		for period := 1; period <= rows; period++ {
			payment := p.InitialMonthlyRent
			if opts.UseEscalatedPayments {
				payment = p.RentAt(period)
			}

			interest := remainingLiability * monthlyDiscount
			principal := payment - interest
			remainingLiability -= principal
			remainingAsset -= s.MonthlyDepreciation

			row := Row{
				Period:             period,
				Payment:            payment,
				InterestExpense:    interest,
				PrincipalPayment:   principal,
				RemainingLiability: mathutil.ClampNonNegative(remainingLiability),
				Depreciation:       s.MonthlyDepreciation,
				RemainingAsset:     mathutil.ClampNonNegative(remainingAsset),
			}
			if !yield(row) {
				return
			}
		}
	}, nil
}

// Schedule collects the amortization table into a slice.
func Schedule(p Parameters, s Summary, opts TableOptions) ([]Row, error) {
	seq, err := ComputeAmortizationTable(p, s, opts)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, opts.RowLimit(p.TermMonths))
	for row := range seq {
		rows = append(rows, row)
	}
	return rows, nil
}

// Calculate computes the summary and its schedule in one call.
func Calculate(p Parameters, opts TableOptions) (Result, error) {
	summary, err := ComputeSummary(p)
	if err != nil {
		return Result{}, err
	}
	rows, err := Schedule(p, summary, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Parameters: p, Summary: summary, Rows: rows}, nil
}

func (s Summary) finite() bool {
	return mathutil.IsFinite(s.LeaseLiability) &&
		mathutil.IsFinite(s.RightOfUseAsset) &&
		mathutil.IsFinite(s.ApproximateTotalCost) &&
		mathutil.IsFinite(s.MonthlyDepreciation)
}
