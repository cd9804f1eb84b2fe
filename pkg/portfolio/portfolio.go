// Package portfolio aggregates calculated leases into portfolio-level totals.
package portfolio

import (
	"cmp"
	"slices"

	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
	"go.uber.org/zap"
)

// Entry is one contract with its calculation result.
type Entry struct {
	Contract contract.Contract `json:"contract"`
	Result   lease.Result      `json:"result"`
}

// AssetTypeTotal is the share of the portfolio liability held by one asset type.
type AssetTypeTotal struct {
	AssetType  string  `json:"assetType"`
	Liability  float64 `json:"liability"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// Maturity is a contract's final month.
type Maturity struct {
	ContractID string  `json:"contractId"`
	Name       string  `json:"name"`
	Month      string  `json:"month"`
	Liability  float64 `json:"liability"`
}

// Summary holds portfolio totals. Amounts from contracts in different
// currencies are summed as-is.
type Summary struct {
	ContractCount            int              `json:"contractCount"`
	TotalLeaseLiability      float64          `json:"totalLeaseLiability"`
	TotalRightOfUseAsset     float64          `json:"totalRightOfUseAsset"`
	TotalMonthlyDepreciation float64          `json:"totalMonthlyDepreciation"`
	TotalFirstMonthInterest  float64          `json:"totalFirstMonthInterest"`
	TotalApproximateCost     float64          `json:"totalApproximateCost"`
	AverageDiscountRate      float64          `json:"averageDiscountRate"`
	Currencies               []string         `json:"currencies"`
	ByAssetType              []AssetTypeTotal `json:"byAssetType"`
	UpcomingMaturities       []Maturity       `json:"upcomingMaturities"`
}

const unclassified = "Unclassified"

// Build totals the entries. Asset types are ordered by liability, largest
// first; maturities are ordered by month, earliest first. Contracts without a
// commencement date have no maturity and are left out of that list.
func Build(logger *zap.Logger, entries []Entry) Summary {
	if logger == nil {
		logger = zap.NewNop()
	}

	summary := Summary{ContractCount: len(entries)}
	byType := make(map[string]*AssetTypeTotal)
	currencies := make(map[string]struct{})
	var weightedRate float64

	for _, entry := range entries {
		s := entry.Result.Summary
		summary.TotalLeaseLiability += s.LeaseLiability
		summary.TotalRightOfUseAsset += s.RightOfUseAsset
		summary.TotalMonthlyDepreciation += s.MonthlyDepreciation
		summary.TotalApproximateCost += s.ApproximateTotalCost
		if len(entry.Result.Rows) > 0 {
			summary.TotalFirstMonthInterest += entry.Result.Rows[0].InterestExpense
		}
		weightedRate += s.LeaseLiability * entry.Contract.Parameters.AnnualDiscountRatePercent
		currencies[entry.Contract.CurrencyCode()] = struct{}{}

		assetType := entry.Contract.AssetType
		if assetType == "" {
			assetType = unclassified
		}
		total, ok := byType[assetType]
		if !ok {
			total = &AssetTypeTotal{AssetType: assetType}
			byType[assetType] = total
		}
		total.Liability += s.LeaseLiability
		total.Count++

		month, err := entry.Contract.MaturityMonth()
		if err != nil {
			logger.Warn("skipping maturity for contract with malformed commencement",
				zap.String("op", "portfolio.Build"),
				zap.String("contract", entry.Contract.Name()),
				zap.Error(err),
			)
			continue
		}
		if month != "" {
			summary.UpcomingMaturities = append(summary.UpcomingMaturities, Maturity{
				ContractID: entry.Contract.ID,
				Name:       entry.Contract.Name(),
				Month:      month,
				Liability:  s.LeaseLiability,
			})
		}
	}

	if summary.TotalLeaseLiability != 0 {
		summary.AverageDiscountRate = weightedRate / summary.TotalLeaseLiability
	}

	for _, total := range byType {
		total.Percentage = mathutil.CalculatePercentage(total.Liability, summary.TotalLeaseLiability)
		summary.ByAssetType = append(summary.ByAssetType, *total)
	}
	slices.SortFunc(summary.ByAssetType, func(a, b AssetTypeTotal) int {
		if c := cmp.Compare(b.Liability, a.Liability); c != 0 {
			return c
		}
		return cmp.Compare(a.AssetType, b.AssetType)
	})

	slices.SortStableFunc(summary.UpcomingMaturities, func(a, b Maturity) int {
		return cmp.Compare(a.Month, b.Month)
	})

	for code := range currencies {
		summary.Currencies = append(summary.Currencies, code)
	}
	slices.Sort(summary.Currencies)
	if len(summary.Currencies) > 1 {
		logger.Warn("portfolio mixes currencies; totals are not converted",
			zap.String("op", "portfolio.Build"),
			zap.Strings("currencies", summary.Currencies),
		)
	}

	logger.Debug("portfolio summary built",
		zap.String("op", "portfolio.Build"),
		zap.Int("contracts", summary.ContractCount),
		zap.Float64("total_liability", summary.TotalLeaseLiability),
	)
	return summary
}
