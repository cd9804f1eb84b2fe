package integration

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/iwvelando/lease-amortization/internal/config"
	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/portfolio"
	"go.uber.org/zap"
)

// largePortfolio builds n contracts with varied terms and rates.
func largePortfolio(n int) []contract.Contract {
	assetTypes := []string{"Real Estate", "Vehicle", "Equipment", "IT Hardware"}
	contracts := make([]contract.Contract, n)
	for i := range n {
		contracts[i] = contract.Contract{
			ID:           fmt.Sprintf("LC-%05d", i+1),
			Lessor:       "Holdings",
			Lessee:       "ABC Corp",
			AssetType:    assetTypes[i%len(assetTypes)],
			Commencement: fmt.Sprintf("20%02d-%02d", 20+i%6, 1+i%12),
			Parameters: lease.Parameters{
				InitialMonthlyRent:          float64(500 + 25*(i%200)),
				TermMonths:                  12 + i%109,
				AnnualDiscountRatePercent:   2 + float64(i%7),
				AnnualEscalationRatePercent: float64(i % 5),
				InitialDirectCosts:          float64(100 * (i % 10)),
			},
		}
	}
	return contracts
}

// TestPerformance checks that a large portfolio with full-term schedules is
// calculated well within interactive latency.
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	contracts := largePortfolio(1000)

	start = time.Now()
	entries, err := config.Calculate(logger, contracts, lease.FullTermOptions(conf.Schedule.UseEscalatedPayments))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	calcTime := time.Since(start)

	start = time.Now()
	summary := portfolio.Build(logger, entries)
	summaryTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Config loading: %v", loadTime)
	t.Logf("  Lease calculation (%d leases): %v", len(entries), calcTime)
	t.Logf("  Portfolio summary: %v", summaryTime)

	if summary.ContractCount != len(contracts) {
		t.Errorf("ContractCount = %d, expected %d", summary.ContractCount, len(contracts))
	}
	if calcTime > 5*time.Second {
		t.Errorf("Lease calculation took too long: %v", calcTime)
	}
	if summaryTime > time.Second {
		t.Errorf("Portfolio summary took too long: %v", summaryTime)
	}
}

// TestMemoryUsage checks that the lazy amortization table does not allocate
// per row when only a prefix is consumed.
func TestMemoryUsage(t *testing.T) {
	p := lease.Parameters{
		InitialMonthlyRent:        1000,
		TermMonths:                constants.MaxTermMonths,
		AnnualDiscountRatePercent: 5,
	}
	summary, err := lease.ComputeSummary(p)
	if err != nil {
		t.Fatalf("ComputeSummary failed: %v", err)
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	table, err := lease.ComputeAmortizationTable(p, summary, lease.FullTermOptions(false))
	if err != nil {
		t.Fatalf("ComputeAmortizationTable failed: %v", err)
	}
	count := 0
	for range table {
		count++
		if count == 10 {
			break
		}
	}

	runtime.ReadMemStats(&after)
	allocated := after.TotalAlloc - before.TotalAlloc
	t.Logf("Allocated %d bytes for the first %d rows of a %d-month table", allocated, count, p.TermMonths)

	if count != 10 {
		t.Errorf("expected to read 10 rows, got %d", count)
	}
	if allocated > 1<<20 {
		t.Errorf("reading a table prefix allocated %d bytes", allocated)
	}
}

// TestDataConsistency checks that repeated runs produce identical results.
func TestDataConsistency(t *testing.T) {
	logger := zap.NewNop()
	contracts := largePortfolio(50)

	first, err := config.Calculate(logger, contracts, lease.DefaultTableOptions())
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	second, err := config.Calculate(logger, contracts, lease.DefaultTableOptions())
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	for i := range first {
		if first[i].Result.Summary != second[i].Result.Summary {
			t.Errorf("%s: summary differs between runs", first[i].Contract.ID)
		}
		if len(first[i].Result.Rows) != len(second[i].Result.Rows) {
			t.Errorf("%s: row count differs between runs", first[i].Contract.ID)
			continue
		}
		for j := range first[i].Result.Rows {
			if first[i].Result.Rows[j] != second[i].Result.Rows[j] {
				t.Errorf("%s: row %d differs between runs", first[i].Contract.ID, j+1)
				break
			}
		}
	}
}

// TestConfigurationVariations checks the schedule options against each other.
func TestConfigurationVariations(t *testing.T) {
	p := lease.Parameters{
		InitialMonthlyRent:          5000,
		TermMonths:                  36,
		AnnualDiscountRatePercent:   5.5,
		AnnualEscalationRatePercent: 3,
		InitialDirectCosts:          2500,
	}

	tests := []struct {
		name     string
		opts     lease.TableOptions
		wantRows int
	}{
		{name: "default", opts: lease.TableOptions{}, wantRows: 12},
		{name: "six rows", opts: lease.TableOptions{MaxRows: 6}, wantRows: 6},
		{name: "beyond term", opts: lease.TableOptions{MaxRows: 100}, wantRows: 36},
		{name: "full term flat", opts: lease.FullTermOptions(false), wantRows: 36},
		{name: "full term escalated", opts: lease.FullTermOptions(true), wantRows: 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := lease.Calculate(p, tt.opts)
			if err != nil {
				t.Fatalf("Calculate failed: %v", err)
			}
			if len(result.Rows) != tt.wantRows {
				t.Errorf("expected %d rows, got %d", tt.wantRows, len(result.Rows))
			}
			if result.Rows[0].InterestExpense != result.Summary.LeaseLiability*p.MonthlyDiscountRate() {
				t.Errorf("first interest %f does not accrue on the opening liability", result.Rows[0].InterestExpense)
			}
		})
	}
}

func BenchmarkPortfolioCalculation(b *testing.B) {
	logger := zap.NewNop()
	contracts := largePortfolio(100)
	opts := lease.FullTermOptions(true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := config.Calculate(logger, contracts, opts); err != nil {
			b.Fatal(err)
		}
	}
}
