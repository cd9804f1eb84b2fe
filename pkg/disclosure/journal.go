// Package disclosure derives accounting output from an amortization schedule:
// journal entries, period roll-forward figures and a maturity analysis of
// undiscounted lease payments.
package disclosure

import (
	"fmt"
	"math"

	"github.com/iwvelando/lease-amortization/pkg/datetime"
	"github.com/iwvelando/lease-amortization/pkg/lease"
)

// Ledger accounts used by the generated entries.
const (
	AccountLeaseLiability          = "Lease Liability"
	AccountCash                    = "Cash"
	AccountInterestExpense         = "Interest Expense"
	AccountDepreciationExpense     = "Depreciation Expense - ROU Asset"
	AccountAccumulatedDepreciation = "Accumulated Depreciation - ROU Asset"
)

// JournalEntry is one balanced double entry.
type JournalEntry struct {
	Period        int     `json:"period"`
	Month         string  `json:"month,omitempty"`
	Description   string  `json:"description"`
	DebitAccount  string  `json:"debitAccount"`
	CreditAccount string  `json:"creditAccount"`
	Amount        float64 `json:"amount"`
}

// JournalEntries books every schedule row as three entries: the lease payment,
// the interest unwinding on the liability, and straight-line depreciation.
// Zero amounts are skipped and negative amounts swap debit and credit so every
// entry carries a positive amount. When commencement (YYYY-MM) is set, entries
// are dated with the month of their period.
func JournalEntries(rows []lease.Row, commencement string) ([]JournalEntry, error) {
	entries := make([]JournalEntry, 0, len(rows)*3)
	for _, row := range rows {
		month := ""
		if commencement != "" {
			var err error
			month, err = datetime.PeriodMonth(commencement, row.Period)
			if err != nil {
				return nil, fmt.Errorf("failed to date period %d: %w", row.Period, err)
			}
		}

		entries = appendEntry(entries, row.Period, month, "Lease payment",
			AccountLeaseLiability, AccountCash, row.Payment)
		entries = appendEntry(entries, row.Period, month, "Interest expense on lease liability",
			AccountInterestExpense, AccountLeaseLiability, row.InterestExpense)
		entries = appendEntry(entries, row.Period, month, "Depreciation of right-of-use asset",
			AccountDepreciationExpense, AccountAccumulatedDepreciation, row.Depreciation)
	}
	return entries, nil
}

func appendEntry(entries []JournalEntry, period int, month, description, debit, credit string, amount float64) []JournalEntry {
	if amount == 0 {
		return entries
	}
	if amount < 0 {
		debit, credit = credit, debit
	}
	return append(entries, JournalEntry{
		Period:        period,
		Month:         month,
		Description:   description,
		DebitAccount:  debit,
		CreditAccount: credit,
		Amount:        math.Abs(amount),
	})
}

// Balances sums debits and credits per account; debits are positive.
func Balances(entries []JournalEntry) map[string]float64 {
	balances := make(map[string]float64)
	for _, entry := range entries {
		balances[entry.DebitAccount] += entry.Amount
		balances[entry.CreditAccount] -= entry.Amount
	}
	return balances
}
