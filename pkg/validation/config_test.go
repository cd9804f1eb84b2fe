package validation

import (
	"strings"
	"testing"

	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/lease"
)

func TestValidateLiabilityGrowth(t *testing.T) {
	tests := []struct {
		name        string
		params      lease.Parameters
		opts        lease.TableOptions
		expectWarn  bool
		expectError bool
	}{
		{
			name:       "Ordinary lease amortizes",
			params:     lease.Parameters{InitialMonthlyRent: 5000, TermMonths: 36, AnnualDiscountRatePercent: 5.5, AnnualEscalationRatePercent: 3},
			opts:       lease.DefaultTableOptions(),
			expectWarn: false,
		},
		{
			name:       "Steep escalation under flat payments",
			params:     lease.Parameters{InitialMonthlyRent: 1000, TermMonths: 120, AnnualDiscountRatePercent: 6, AnnualEscalationRatePercent: 20},
			opts:       lease.DefaultTableOptions(),
			expectWarn: true,
		},
		{
			name:       "Steep escalation under escalated payments",
			params:     lease.Parameters{InitialMonthlyRent: 1000, TermMonths: 120, AnnualDiscountRatePercent: 6, AnnualEscalationRatePercent: 20},
			opts:       lease.TableOptions{UseEscalatedPayments: true},
			expectWarn: false,
		},
		{
			name:        "Invalid term",
			params:      lease.Parameters{InitialMonthlyRent: 1000},
			opts:        lease.DefaultTableOptions(),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning, err := ValidateLiabilityGrowth("Test Lease", tt.params, tt.opts)

			if tt.expectError {
				if err == nil {
					t.Errorf("ValidateLiabilityGrowth() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("ValidateLiabilityGrowth() unexpected error = %v", err)
				return
			}

			hasWarning := warning != ""
			if hasWarning != tt.expectWarn {
				t.Errorf("ValidateLiabilityGrowth() warning = %t, expected %t", hasWarning, tt.expectWarn)
			}
		})
	}
}

func TestValidateContract(t *testing.T) {
	base := contract.Contract{
		ID:           "LC-1",
		Commencement: "2024-01",
		Parameters:   lease.Parameters{InitialMonthlyRent: 1000, TermMonths: 12, AnnualDiscountRatePercent: 5},
	}

	tests := []struct {
		name          string
		modify        func(c *contract.Contract)
		expectedCount int
		contains      string
	}{
		{
			name:          "Clean contract",
			modify:        func(c *contract.Contract) {},
			expectedCount: 0,
		},
		{
			name:          "Negative discount rate",
			modify:        func(c *contract.Contract) { c.Parameters.AnnualDiscountRatePercent = -2 },
			expectedCount: 1,
			contains:      "negative discount rate",
		},
		{
			name:          "Quarterly payments",
			modify:        func(c *contract.Contract) { c.PaymentFrequency = "quarterly" },
			expectedCount: 1,
			contains:      "computed monthly",
		},
		{
			name:          "Missing commencement",
			modify:        func(c *contract.Contract) { c.Commencement = "" },
			expectedCount: 1,
			contains:      "no commencement date",
		},
		{
			name: "Multiple issues",
			modify: func(c *contract.Contract) {
				c.Commencement = ""
				c.PaymentFrequency = "annually"
			},
			expectedCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.modify(&c)
			warnings := ValidateContract(c)

			if len(warnings) != tt.expectedCount {
				t.Fatalf("ValidateContract() got %d warnings, expected %d: %v", len(warnings), tt.expectedCount, warnings)
			}
			if tt.contains != "" && !strings.Contains(warnings[0], tt.contains) {
				t.Errorf("warning %q does not mention %q", warnings[0], tt.contains)
			}
		})
	}
}

func TestConfigValidatorValidateAll(t *testing.T) {
	params := lease.Parameters{InitialMonthlyRent: 1000, TermMonths: 12, AnnualDiscountRatePercent: 5}
	validator := &ConfigValidator{
		Contracts: []contract.Contract{
			{ID: "LC-1", Commencement: "2024-01", Parameters: params},
			{ID: "LC-2", Commencement: "2024-01", Parameters: params},
			{ID: "LC-1", Commencement: "2024-02", Parameters: params},
			{ID: "LC-3", Commencement: "2024-01", Parameters: lease.Parameters{
				InitialMonthlyRent: 1000, TermMonths: 120, AnnualDiscountRatePercent: 6, AnnualEscalationRatePercent: 20,
			}},
			{ID: "LC-4", Commencement: "2024-01", Parameters: lease.Parameters{InitialMonthlyRent: 1000}},
		},
		Schedule: lease.DefaultTableOptions(),
	}

	warnings := validator.ValidateAll()
	if len(warnings) != 2 {
		t.Fatalf("ValidateAll() got %d warnings, expected 2: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "'LC-1' is used by leases 1 and 3") {
		t.Errorf("unexpected duplicate warning: %s", warnings[0])
	}
	if !strings.Contains(warnings[1], "liability will grow") {
		t.Errorf("unexpected growth warning: %s", warnings[1])
	}

	validator.Schedule.UseEscalatedPayments = true
	if warnings := validator.ValidateAll(); len(warnings) != 1 {
		t.Errorf("ValidateAll() with escalated payments got %d warnings, expected 1: %v", len(warnings), warnings)
	}
}

func TestConfigValidatorEmpty(t *testing.T) {
	validator := &ConfigValidator{}
	if warnings := validator.ValidateAll(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}
