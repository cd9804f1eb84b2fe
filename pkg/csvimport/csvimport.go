// Package csvimport reads lease contracts from a CSV export with a header row.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/datetime"
	"github.com/iwvelando/lease-amortization/pkg/lease"
)

// Column headers, matched case-insensitively.
const (
	ColumnContractID         = "Contract ID"
	ColumnLessor             = "Lessor"
	ColumnLessee             = "Lessee"
	ColumnAssetType          = "Asset Type"
	ColumnAssetDescription   = "Asset Description"
	ColumnCommencementDate   = "Commencement Date"
	ColumnLeaseTerm          = "Lease Term"
	ColumnRentAmount         = "Rent Amount"
	ColumnDiscountRate       = "Discount Rate"
	ColumnEscalationRate     = "Escalation Rate"
	ColumnInitialDirectCosts = "Initial Direct Costs"
	ColumnCurrency           = "Currency"
	ColumnPaymentFrequency   = "Payment Frequency"
)

var requiredColumns = []string{
	ColumnLessor,
	ColumnLessee,
	ColumnAssetType,
	ColumnCommencementDate,
	ColumnLeaseTerm,
	ColumnRentAmount,
	ColumnDiscountRate,
}

// parameter fields reported by lease.ParseParameters, keyed to their column.
var fieldColumns = map[string]string{
	"initialMonthlyRent":          ColumnRentAmount,
	"termMonths":                  ColumnLeaseTerm,
	"annualDiscountRatePercent":   ColumnDiscountRate,
	"annualEscalationRatePercent": ColumnEscalationRate,
	"initialDirectCosts":          ColumnInitialDirectCosts,
}

var (
	// ErrMissingColumn indicates a required header is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMissingValue indicates a required cell is blank.
	ErrMissingValue = errors.New("required value is blank")
)

// descriptive columns that must be filled on every row.
var requiredValues = []string{
	ColumnLessor,
	ColumnLessee,
	ColumnAssetType,
	ColumnCommencementDate,
}

// RowError locates a rejected cell.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Read parses every data row into a contract. Commencement dates are given as
// YYYY-MM-DD (or YYYY-MM) and stored as YYYY-MM. Rows without a Contract ID
// receive a generated one. Blank lines are skipped.
func Read(r io.Reader) ([]contract.Contract, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalize(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[normalize(name)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var contracts []contract.Contract
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		c, err := parseRecord(index, record, line)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

func parseRecord(index map[string]int, record []string, line int) (contract.Contract, error) {
	cell := func(column string) string {
		i, ok := index[normalize(column)]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for _, column := range requiredValues {
		if cell(column) == "" {
			return contract.Contract{}, &RowError{Line: line, Column: column, Err: ErrMissingValue}
		}
	}

	commencement, err := datetime.NormalizeMonth(cell(ColumnCommencementDate))
	if err != nil {
		return contract.Contract{}, &RowError{Line: line, Column: ColumnCommencementDate, Err: err}
	}

	params, err := lease.ParseParameters(lease.RawInput{
		InitialMonthlyRent:    cell(ColumnRentAmount),
		TermMonths:            cell(ColumnLeaseTerm),
		DiscountRatePercent:   cell(ColumnDiscountRate),
		EscalationRatePercent: cell(ColumnEscalationRate),
		InitialDirectCosts:    cell(ColumnInitialDirectCosts),
	})
	if err != nil {
		column := ""
		var vErr *lease.ValidationError
		if errors.As(err, &vErr) {
			column = fieldColumns[vErr.Field]
		}
		return contract.Contract{}, &RowError{Line: line, Column: column, Err: err}
	}

	id := cell(ColumnContractID)
	if id == "" {
		id = uuid.NewString()
	}

	return contract.Contract{
		ID:               id,
		Lessor:           cell(ColumnLessor),
		Lessee:           cell(ColumnLessee),
		AssetType:        cell(ColumnAssetType),
		AssetDescription: cell(ColumnAssetDescription),
		Commencement:     commencement,
		Currency:         cell(ColumnCurrency),
		PaymentFrequency: strings.ToLower(cell(ColumnPaymentFrequency)),
		Parameters:       params,
	}, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
