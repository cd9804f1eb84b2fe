package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/portfolio"
	"github.com/iwvelando/lease-amortization/pkg/testutil"
)

func goldenEntries(t *testing.T) []portfolio.Entry {
	t.Helper()
	c := testutil.GoldenContract()
	result, err := lease.Calculate(c.Parameters, lease.DefaultTableOptions())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return []portfolio.Entry{{Contract: c, Result: result}}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, goldenEntries(t))
	output := buf.String()

	expected := []string{
		"--- Results for lease LC-2024-001 (Office Building - Downtown) ---",
		"Lessor: Property Holdings | Lessee: ABC Corp",
		"Term: 36 months | Discount rate: 5.50% | Escalation: 3.00%",
		"Lease liability:        $172,826.27",
		"Right-of-use asset:     $175,326.27",
		"Approximate total cost: $188,100.00",
		"Monthly depreciation:   $4,870.17",
		"Period | Month   | Payment | Interest | Principal | Liability | Depreciation | ROU Asset",
		"     1 | 2024-01 | 5,000.00 | 792.12 | 4,207.88 | 168,618.39 | 4,870.17 | 170,456.09",
		"    12 | 2024-12 | 5,000.00 | 575.04 |",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q\n%s", want, output)
		}
	}
}

func TestPrettyFormatWithoutCommencement(t *testing.T) {
	entries := goldenEntries(t)
	entries[0].Contract.Commencement = ""
	entries[0].Contract.Currency = "EUR"

	var buf bytes.Buffer
	PrettyFormat(&buf, entries)
	output := buf.String()

	if !strings.Contains(output, "     1 | -       |") {
		t.Errorf("expected undated period marker\n%s", output)
	}
	if !strings.Contains(output, "€172,826.27") {
		t.Errorf("expected euro amounts\n%s", output)
	}
}

func TestPrettyFormatLongTermPeriods(t *testing.T) {
	c := testutil.GoldenContract()
	c.Parameters.TermMonths = 1000
	result, err := lease.Calculate(c.Parameters, lease.FullTermOptions(false))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	var buf bytes.Buffer
	PrettyFormat(&buf, []portfolio.Entry{{Contract: c, Result: result}})
	output := buf.String()

	if !strings.Contains(output, "  1000 | 2107-04 | ") {
		t.Errorf("expected period 1000 without separators\n%s", output[len(output)-200:])
	}
	if strings.Contains(output, "1,000 |") {
		t.Error("period column should not use thousands separators")
	}
}

func TestPrettyFormatEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, goldenEntries(t)); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced invalid CSV: %v", err)
	}
	if len(records) != 13 {
		t.Fatalf("expected header and 12 rows, got %d records", len(records))
	}
	if records[0][0] != "lease" || records[0][9] != "remaining asset" {
		t.Errorf("unexpected header %v", records[0])
	}

	first := records[1]
	expected := []string{
		"LC-2024-001 (Office Building - Downtown)", "USD", "1", "2024-01",
		"5000.00", "792.12", "4207.88", "168618.39", "4870.17", "170456.09",
	}
	for i, want := range expected {
		if first[i] != want {
			t.Errorf("column %d = %q, expected %q", i, first[i], want)
		}
	}
	if records[12][7] != "121039.18" {
		t.Errorf("twelfth remaining liability = %s, expected 121039.18", records[12][7])
	}
}

func TestCsvFormatQuotesNames(t *testing.T) {
	entries := goldenEntries(t)
	entries[0].Contract.AssetDescription = `Office, "North" wing`

	var buf bytes.Buffer
	if err := CsvFormat(&buf, entries); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced invalid CSV: %v", err)
	}
	if records[1][0] != `LC-2024-001 (Office, "North" wing)` {
		t.Errorf("lease name = %q", records[1][0])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, goldenEntries(t)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var reports []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &reports); err != nil {
		t.Fatalf("JSONFormat produced invalid JSON: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	summary := reports[0]["summary"].(map[string]any)
	if summary["leaseLiability"] != "172826.27" {
		t.Errorf("leaseLiability = %v, expected 172826.27", summary["leaseLiability"])
	}
	schedule := reports[0]["schedule"].([]any)
	if len(schedule) != 12 {
		t.Fatalf("expected 12 schedule lines, got %d", len(schedule))
	}
	first := schedule[0].(map[string]any)
	if first["month"] != "2024-01" || first["interestExpense"] != "792.12" {
		t.Errorf("unexpected first line %v", first)
	}
	if reports[0]["currency"] != "USD" {
		t.Errorf("currency = %v", reports[0]["currency"])
	}
}

func TestPortfolioPretty(t *testing.T) {
	entries := goldenEntries(t)
	summary := portfolio.Build(nil, entries)

	var buf bytes.Buffer
	PortfolioPretty(&buf, summary)
	output := buf.String()

	expected := []string{
		"--- Portfolio summary (1 leases) ---",
		"Total lease liability:      172,826.27",
		"Weighted discount rate:     5.50%",
		"Real Estate | 1 | 172,826.27 | 100.00%",
		"2026-12 | LC-2024-001 (Office Building - Downtown) | 172,826.27",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PortfolioPretty output missing %q\n%s", want, output)
		}
	}
	if strings.Contains(output, "mix currencies") {
		t.Error("single-currency portfolio should not carry a currency note")
	}
}
