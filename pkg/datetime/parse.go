// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/lease-amortization/pkg/constants"
)

const (
	// DateTimeLayout is the month format used in config files and output.
	DateTimeLayout = constants.DateTimeLayout
)

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// NormalizeMonth accepts a YYYY-MM or YYYY-MM-DD date and returns it as YYYY-MM.
// An empty string is returned unchanged.
func NormalizeMonth(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if t, err := time.Parse(DateTimeLayout, trimmed); err == nil {
		return t.Format(DateTimeLayout), nil
	}
	t, err := time.Parse(constants.CSVDateLayout, trimmed)
	if err != nil {
		return "", fmt.Errorf("expected date as YYYY-MM or YYYY-MM-DD, got %q", value)
	}
	return t.Format(DateTimeLayout), nil
}

// PeriodMonth returns the month in which the given 1-based lease period falls
// for a lease commencing in commencement (YYYY-MM). Period 1 is the
// commencement month.
func PeriodMonth(commencement string, period int) (string, error) {
	return OffsetDate(commencement, DateTimeLayout, period-1)
}
