// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/lease"
)

// ValidateLiabilityGrowth warns when the first flat payment does not cover the
// first month's interest, so the liability grows instead of amortizing. Only
// flat schedules are checked; escalated payments track the discounted rents.
func ValidateLiabilityGrowth(name string, p lease.Parameters, opts lease.TableOptions) (string, error) {
	if opts.UseEscalatedPayments {
		return "", nil
	}
	summary, err := lease.ComputeSummary(p)
	if err != nil {
		return "", err
	}

	interest := summary.LeaseLiability * p.MonthlyDiscountRate()
	if interest > p.InitialMonthlyRent {
		return fmt.Sprintf("Lease '%s' first interest %.2f exceeds the flat payment %.2f - liability will grow before it amortizes",
			name, interest, p.InitialMonthlyRent), nil
	}
	return "", nil
}

// ValidateContract returns warnings for inputs that calculate but are likely
// mistakes or are ignored by the monthly engine.
func ValidateContract(c contract.Contract) []string {
	var warnings []string
	name := c.Name()

	if c.Parameters.AnnualDiscountRatePercent < 0 {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' has a negative discount rate (%.2f%%)",
			name, c.Parameters.AnnualDiscountRatePercent))
	}

	if !c.IsMonthly() {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' declares %s payments - schedule is computed monthly",
			name, c.PaymentFrequency))
	}

	if c.Commencement == "" {
		warnings = append(warnings, fmt.Sprintf("Lease '%s' has no commencement date - periods will not be dated", name))
	}

	return warnings
}

// ConfigValidator checks a set of contracts sharing one schedule setting.
type ConfigValidator struct {
	Contracts []contract.Contract
	Schedule  lease.TableOptions
}

// ValidateAll validates every contract and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]int)
	for i, c := range cv.Contracts {
		if c.ID != "" {
			if first, ok := seen[c.ID]; ok {
				warnings = append(warnings, fmt.Sprintf("Lease id '%s' is used by leases %d and %d", c.ID, first+1, i+1))
			} else {
				seen[c.ID] = i
			}
		}

		warnings = append(warnings, ValidateContract(c)...)

		// Calculation errors are reported when the leases are processed.
		warning, err := ValidateLiabilityGrowth(c.Name(), c.Parameters, cv.Schedule)
		if err == nil && warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
