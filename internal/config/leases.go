package config

import (
	"fmt"

	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/datetime"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/portfolio"
	"go.uber.org/zap"
)

// Lease indicates a lease contract and its calculation inputs.
type Lease struct {
	ID                 string  `yaml:"id"`
	Lessor             string  `yaml:"lessor"`
	Lessee             string  `yaml:"lessee"`
	AssetType          string  `yaml:"assetType"`
	AssetDescription   string  `yaml:"assetDescription,omitempty"`
	Commencement       string  `yaml:"commencement,omitempty"` // YYYY-MM or YYYY-MM-DD
	Currency           string  `yaml:"currency,omitempty"`
	PaymentFrequency   string  `yaml:"paymentFrequency,omitempty"`
	MonthlyRent        float64 `yaml:"monthlyRent"`
	TermMonths         int     `yaml:"termMonths"`
	DiscountRate       float64 `yaml:"discountRate"`   // annual percent
	EscalationRate     float64 `yaml:"escalationRate"` // annual percent
	InitialDirectCosts float64 `yaml:"initialDirectCosts"`
}

// Parameters returns the calculation inputs of the lease.
func (l Lease) Parameters() lease.Parameters {
	return lease.Parameters{
		InitialMonthlyRent:          l.MonthlyRent,
		TermMonths:                  l.TermMonths,
		AnnualDiscountRatePercent:   l.DiscountRate,
		AnnualEscalationRatePercent: l.EscalationRate,
		InitialDirectCosts:          l.InitialDirectCosts,
	}
}

// Contract converts the lease into a contract.
func (l Lease) Contract() (contract.Contract, error) {
	commencement, err := datetime.NormalizeMonth(l.Commencement)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("commencement: %w", err)
	}
	return contract.Contract{
		ID:               l.ID,
		Lessor:           l.Lessor,
		Lessee:           l.Lessee,
		AssetType:        l.AssetType,
		AssetDescription: l.AssetDescription,
		Commencement:     commencement,
		Currency:         l.Currency,
		PaymentFrequency: l.PaymentFrequency,
		Parameters:       l.Parameters(),
	}, nil
}

// ProcessLeases calculates every configured lease using the configured schedule
// options. The first lease that fails stops processing.
func (conf *Configuration) ProcessLeases(logger *zap.Logger) ([]portfolio.Entry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	contracts, err := conf.Contracts()
	if err != nil {
		return nil, err
	}
	return Calculate(logger, contracts, conf.Schedule)
}

// Calculate computes the result of each contract with the same table options.
func Calculate(logger *zap.Logger, contracts []contract.Contract, opts lease.TableOptions) ([]portfolio.Entry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries := make([]portfolio.Entry, 0, len(contracts))
	for _, c := range contracts {
		result, err := lease.Calculate(c.Parameters, opts)
		if err != nil {
			logger.Error("lease calculation failed",
				zap.String("op", "config.Calculate"),
				zap.String("lease", c.Name()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("lease %s: %w", c.Name(), err)
		}

		logger.Debug("lease calculated",
			zap.String("op", "config.Calculate"),
			zap.String("lease", c.Name()),
			zap.Float64("lease_liability", result.Summary.LeaseLiability),
			zap.Int("rows", len(result.Rows)),
		)
		entries = append(entries, portfolio.Entry{Contract: c, Result: result})
	}
	return entries, nil
}
