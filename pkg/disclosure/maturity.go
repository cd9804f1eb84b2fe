package disclosure

import (
	"fmt"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
)

// MaturityBucket is the undiscounted payments falling due within one year band.
type MaturityBucket struct {
	Label      string  `json:"label"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Maturity is a maturity analysis of undiscounted lease payments.
type Maturity struct {
	Buckets []MaturityBucket `json:"buckets"`
	Total   float64          `json:"total"`
}

// MaturityAnalysis groups every payment of the term into yearly bands. The
// payment basis (flat or escalated) follows opts.UseEscalatedPayments; the
// row cap in opts does not apply.
func MaturityAnalysis(p lease.Parameters, opts lease.TableOptions) (Maturity, error) {
	if err := p.Validate(); err != nil {
		return Maturity{}, err
	}

	years := (p.TermMonths + constants.MonthsPerYear - 1) / constants.MonthsPerYear
	m := Maturity{Buckets: make([]MaturityBucket, years)}
	for year := range m.Buckets {
		m.Buckets[year].Label = bucketLabel(year)
	}

	for period := 1; period <= p.TermMonths; period++ {
		payment := p.InitialMonthlyRent
		if opts.UseEscalatedPayments {
			payment = p.RentAt(period)
		}
		m.Buckets[(period-1)/constants.MonthsPerYear].Amount += payment
		m.Total += payment
	}

	for i := range m.Buckets {
		m.Buckets[i].Percentage = mathutil.CalculatePercentage(m.Buckets[i].Amount, m.Total)
	}
	return m, nil
}

func bucketLabel(year int) string {
	if year == 0 {
		return "Within 1 year"
	}
	return fmt.Sprintf("%d-%d years", year, year+1)
}
