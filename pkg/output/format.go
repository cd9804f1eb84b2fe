// Package output provides utilities for formatting and displaying lease results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/format"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/portfolio"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LeaseReport is the display form of one calculated lease. Amounts are
// rounded to cents.
type LeaseReport struct {
	ID         string               `json:"id,omitempty"`
	Name       string               `json:"name"`
	Lessor     string               `json:"lessor,omitempty"`
	Lessee     string               `json:"lessee,omitempty"`
	AssetType  string               `json:"assetType,omitempty"`
	Currency   string               `json:"currency"`
	Parameters lease.Parameters     `json:"parameters"`
	Summary    lease.RoundedSummary `json:"summary"`
	Schedule   []ScheduleLine       `json:"schedule"`
}

// ScheduleLine is a rounded schedule row with its calendar month, if known.
type ScheduleLine struct {
	lease.RoundedRow
	Month string `json:"month,omitempty"`
}

// NewLeaseReport rounds an entry for display.
func NewLeaseReport(entry portfolio.Entry) LeaseReport {
	c := entry.Contract
	report := LeaseReport{
		ID:         c.ID,
		Name:       c.Name(),
		Lessor:     c.Lessor,
		Lessee:     c.Lessee,
		AssetType:  c.AssetType,
		Currency:   c.CurrencyCode(),
		Parameters: entry.Result.Parameters,
		Summary:    entry.Result.Summary.Rounded(),
		Schedule:   make([]ScheduleLine, len(entry.Result.Rows)),
	}
	for i, row := range lease.RoundRows(entry.Result.Rows) {
		report.Schedule[i] = ScheduleLine{RoundedRow: row, Month: periodMonth(c, row.Period)}
	}
	return report
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, entries []portfolio.Entry) {
	p := message.NewPrinter(language.English)
	for i, entry := range entries {
		c := entry.Contract
		code := c.CurrencyCode()
		s := entry.Result.Summary

		_, _ = p.Fprintf(w, "--- Results for lease %s ---\n", c.Name())
		if c.Lessor != "" || c.Lessee != "" {
			_, _ = p.Fprintf(w, "Lessor: %s | Lessee: %s\n", c.Lessor, c.Lessee)
		}
		_, _ = p.Fprintf(w, "Term: %d months | Discount rate: %s | Escalation: %s\n",
			entry.Result.Parameters.TermMonths,
			format.Percent(entry.Result.Parameters.AnnualDiscountRatePercent),
			format.Percent(entry.Result.Parameters.AnnualEscalationRatePercent))
		_, _ = p.Fprintf(w, "Lease liability:        %s\n", format.WithCode(s.LeaseLiability, code))
		_, _ = p.Fprintf(w, "Right-of-use asset:     %s\n", format.WithCode(s.RightOfUseAsset, code))
		_, _ = p.Fprintf(w, "Approximate total cost: %s\n", format.WithCode(s.ApproximateTotalCost, code))
		_, _ = p.Fprintf(w, "Monthly depreciation:   %s\n", format.WithCode(s.MonthlyDepreciation, code))
		_, _ = fmt.Fprintln(w)

		_, _ = fmt.Fprintf(w, "Period | Month   | Payment | Interest | Principal | Liability | Depreciation | ROU Asset\n")
		_, _ = fmt.Fprintf(w, "______ | _______ | _______ | ________ | _________ | _________ | ____________ | _________\n")
		for _, row := range entry.Result.Rows {
			month := periodMonth(c, row.Period)
			if month == "" {
				month = "-"
			}
			_, _ = fmt.Fprintf(w, "%6d | %-7s | ", row.Period, month)
			_, _ = p.Fprintf(w, "%s | %s | %s | %s | %s | %s\n",
				format.NumericCurrency(row.Payment),
				format.NumericCurrency(row.InterestExpense),
				format.NumericCurrency(row.PrincipalPayment),
				format.NumericCurrency(row.RemainingLiability),
				format.NumericCurrency(row.Depreciation),
				format.NumericCurrency(row.RemainingAsset))
		}
		if i < len(entries)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs every schedule row of every lease in comma-separated value format.
func CsvFormat(w io.Writer, entries []portfolio.Entry) error {
	writer := csv.NewWriter(w)
	header := []string{
		"lease", "currency", "period", "month", "payment", "interest expense",
		"principal payment", "remaining liability", "depreciation", "remaining asset",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, entry := range entries {
		c := entry.Contract
		for _, r := range lease.RoundRows(entry.Result.Rows) {
			record := []string{
				c.Name(),
				c.CurrencyCode(),
				strconv.Itoa(r.Period),
				periodMonth(c, r.Period),
				r.Payment.StringFixed(2),
				r.InterestExpense.StringFixed(2),
				r.PrincipalPayment.StringFixed(2),
				r.RemainingLiability.StringFixed(2),
				r.Depreciation.StringFixed(2),
				r.RemainingAsset.StringFixed(2),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// JSONFormat outputs the rounded reports as an indented JSON array.
func JSONFormat(w io.Writer, entries []portfolio.Entry) error {
	reports := make([]LeaseReport, len(entries))
	for i, entry := range entries {
		reports[i] = NewLeaseReport(entry)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}

// PortfolioPretty outputs the portfolio totals, asset type breakdown and
// maturities.
func PortfolioPretty(w io.Writer, summary portfolio.Summary) {
	p := message.NewPrinter(language.English)

	_, _ = p.Fprintf(w, "--- Portfolio summary (%d leases) ---\n", summary.ContractCount)
	if len(summary.Currencies) > 1 {
		_, _ = p.Fprintf(w, "Note: totals mix currencies %v without conversion\n", summary.Currencies)
	}
	_, _ = p.Fprintf(w, "Total lease liability:      %s\n", format.NumericCurrency(summary.TotalLeaseLiability))
	_, _ = p.Fprintf(w, "Total right-of-use assets:  %s\n", format.NumericCurrency(summary.TotalRightOfUseAsset))
	_, _ = p.Fprintf(w, "Monthly depreciation:       %s\n", format.NumericCurrency(summary.TotalMonthlyDepreciation))
	_, _ = p.Fprintf(w, "First month interest:       %s\n", format.NumericCurrency(summary.TotalFirstMonthInterest))
	_, _ = p.Fprintf(w, "Weighted discount rate:     %s\n", format.Percent(summary.AverageDiscountRate))

	if len(summary.ByAssetType) > 0 {
		_, _ = fmt.Fprintf(w, "\nAsset type | Leases | Liability | Share\n")
		for _, total := range summary.ByAssetType {
			_, _ = p.Fprintf(w, "%s | %d | %s | %s\n",
				total.AssetType, total.Count, format.NumericCurrency(total.Liability), format.Percent(total.Percentage))
		}
	}

	if len(summary.UpcomingMaturities) > 0 {
		_, _ = fmt.Fprintf(w, "\nMaturity | Lease | Liability\n")
		for _, maturity := range summary.UpcomingMaturities {
			_, _ = p.Fprintf(w, "%s | %s | %s\n",
				maturity.Month, maturity.Name, format.NumericCurrency(maturity.Liability))
		}
	}
}

// periodMonth dates a period; malformed commencement dates are rejected when
// configuration loads, so an error here just leaves the month blank.
func periodMonth(c contract.Contract, period int) string {
	month, err := c.PeriodMonth(period)
	if err != nil {
		return ""
	}
	return month
}
