// Package contract describes a lease contract: who leases what, from when,
// and the inputs its amortization is computed from.
package contract

import (
	"fmt"
	"strings"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/datetime"
	"github.com/iwvelando/lease-amortization/pkg/lease"
)

// Contract pairs descriptive metadata with calculation inputs. Currency and
// PaymentFrequency are informational only; every calculation is monthly in a
// unitless amount.
type Contract struct {
	ID               string           `json:"id" yaml:"id"`
	Lessor           string           `json:"lessor" yaml:"lessor"`
	Lessee           string           `json:"lessee" yaml:"lessee"`
	AssetType        string           `json:"assetType" yaml:"assetType"`
	AssetDescription string           `json:"assetDescription,omitempty" yaml:"assetDescription,omitempty"`
	Commencement     string           `json:"commencement,omitempty" yaml:"commencement,omitempty"` // YYYY-MM
	Currency         string           `json:"currency,omitempty" yaml:"currency,omitempty"`
	PaymentFrequency string           `json:"paymentFrequency,omitempty" yaml:"paymentFrequency,omitempty"`
	Parameters       lease.Parameters `json:"parameters" yaml:"parameters"`
}

// Name returns a human-readable label for the contract.
func (c Contract) Name() string {
	switch {
	case c.ID != "" && c.AssetDescription != "":
		return fmt.Sprintf("%s (%s)", c.ID, c.AssetDescription)
	case c.ID != "":
		return c.ID
	case c.AssetDescription != "":
		return c.AssetDescription
	default:
		return fmt.Sprintf("%s / %s", c.Lessor, c.Lessee)
	}
}

// CurrencyCode returns the display currency, defaulting to USD.
func (c Contract) CurrencyCode() string {
	code := strings.ToUpper(strings.TrimSpace(c.Currency))
	if code == "" {
		return constants.DefaultCurrency
	}
	return code
}

// IsMonthly reports whether the declared payment frequency matches the
// monthly periods the engine computes. An empty frequency counts as monthly.
func (c Contract) IsMonthly() bool {
	freq := strings.ToLower(strings.TrimSpace(c.PaymentFrequency))
	return freq == "" || freq == constants.FrequencyMonthly
}

// PeriodMonth returns the YYYY-MM month of the given 1-based period, or an
// empty string when the contract has no commencement date.
func (c Contract) PeriodMonth(period int) (string, error) {
	if c.Commencement == "" {
		return "", nil
	}
	return datetime.PeriodMonth(c.Commencement, period)
}

// MaturityMonth returns the month in which the final period falls.
func (c Contract) MaturityMonth() (string, error) {
	return c.PeriodMonth(c.Parameters.TermMonths)
}
