package lease

import (
	"strconv"
	"strings"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
)

// RawInput holds lease inputs as entered by a user. Rates are in percent and
// may carry a trailing '%'.
type RawInput struct {
	InitialMonthlyRent    string `json:"initialMonthlyRent"`
	TermMonths            string `json:"termMonths"`
	DiscountRatePercent   string `json:"discountRate"`
	EscalationRatePercent string `json:"escalationRate"`
	InitialDirectCosts    string `json:"initialDirectCosts"`
}

// ParseParameters converts user-entered text into validated Parameters.
// Escalation and initial direct costs default to zero when left blank; every
// other field is required.
func ParseParameters(raw RawInput) (Parameters, error) {
	var p Parameters
	var err error

	if p.InitialMonthlyRent, err = parseAmount("initialMonthlyRent", raw.InitialMonthlyRent, false); err != nil {
		return Parameters{}, err
	}
	if p.TermMonths, err = parseTerm(raw.TermMonths); err != nil {
		return Parameters{}, err
	}
	if p.AnnualDiscountRatePercent, err = parsePercent("annualDiscountRatePercent", raw.DiscountRatePercent, false); err != nil {
		return Parameters{}, err
	}
	if p.AnnualEscalationRatePercent, err = parsePercent("annualEscalationRatePercent", raw.EscalationRatePercent, true); err != nil {
		return Parameters{}, err
	}
	if p.InitialDirectCosts, err = parseAmount("initialDirectCosts", raw.InitialDirectCosts, true); err != nil {
		return Parameters{}, err
	}

	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// ParseFloat reads a finite decimal number, tagging failures with the field name.
func ParseFloat(field, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !mathutil.IsFinite(f) {
		return 0, &ValidationError{Field: field, Value: value, Err: ErrNonNumericInput}
	}
	return f, nil
}

func parseAmount(field, value string, optional bool) (float64, error) {
	if optional && strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return ParseFloat(field, value)
}

func parsePercent(field, value string, optional bool) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "%")
	if optional && strings.TrimSpace(trimmed) == "" {
		return 0, nil
	}
	f, err := ParseFloat(field, trimmed)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: value, Err: ErrNonNumericInput}
	}
	return f, nil
}

func parseTerm(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ValidationError{Field: "termMonths", Value: value, Err: ErrNonNumericInput}
	}
	if n <= 0 || n > constants.MaxTermMonths {
		return 0, &ValidationError{Field: "termMonths", Value: value, Err: ErrInvalidTerm}
	}
	return n, nil
}
