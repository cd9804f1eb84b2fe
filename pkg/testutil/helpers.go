// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
	"github.com/iwvelando/lease-amortization/pkg/portfolio"
)

// GoldenParameters returns the regression scenario used across packages:
// 5,000 monthly rent over 36 months at 5.5% with 3% escalation and 2,500 of
// initial direct costs.
func GoldenParameters() lease.Parameters {
	return lease.Parameters{
		InitialMonthlyRent:          5000,
		TermMonths:                  36,
		AnnualDiscountRatePercent:   5.5,
		AnnualEscalationRatePercent: 3.0,
		InitialDirectCosts:          2500,
	}
}

// GoldenContract wraps GoldenParameters in contract metadata.
func GoldenContract() contract.Contract {
	return contract.Contract{
		ID:               "LC-2024-001",
		Lessor:           "Property Holdings",
		Lessee:           "ABC Corp",
		AssetType:        "Real Estate",
		AssetDescription: "Office Building - Downtown",
		Commencement:     "2024-01",
		Currency:         "USD",
		PaymentFrequency: "monthly",
		Parameters:       GoldenParameters(),
	}
}

// AssertFloatEquals fails the test when actual differs from expected by more
// than tolerance.
func AssertFloatEquals(t testing.TB, expected, actual, tolerance float64, description string) {
	t.Helper()
	if math.IsNaN(actual) || !mathutil.WithinTolerance(expected, actual, tolerance) {
		t.Errorf("%s: expected %.6f, got %.6f (diff: %.6f)", description, expected, actual, actual-expected)
	}
}

// AssertCurrencyEquals fails the test when actual is more than one cent away
// from expected.
func AssertCurrencyEquals(t testing.TB, expected, actual float64, description string) {
	t.Helper()
	AssertFloatEquals(t, expected, actual, constants.CurrencyTolerance, description)
}

// FindEntry finds a portfolio entry by contract id.
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(entries []portfolio.Entry, id string) *portfolio.Entry {
	for i := range entries {
		if entries[i].Contract.ID == id {
			return &entries[i]
		}
	}
	return nil
}

// WriteFile writes contents to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t testing.TB, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
