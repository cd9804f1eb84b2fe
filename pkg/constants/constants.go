// Package constants provides shared constants for the lease-amortization application.
package constants

// DateTimeLayout is the month format used for commencement dates in config files
// and for period labels in output.
const DateTimeLayout = "2006-01"

// CSVDateLayout is the commencement date format accepted by the contract CSV import.
const CSVDateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DisplayPlaces is the number of decimal places shown for currency values
	DisplayPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// EscalationApproximationDivisor is the divisor in the closed-form total cost
	// approximation rent * term * (1 + escalation * term / 24).
	EscalationApproximationDivisor = 24.0
)

// Schedule defaults
const (
	// DefaultMaxRows is the number of amortization rows shown when no limit is configured
	DefaultMaxRows = 12

	// FullTerm requests a schedule covering every period of the lease
	FullTerm = -1

	// MaxTermMonths is the longest lease term accepted (100 years)
	MaxTermMonths = 1200
)

// Payment frequencies accepted in contract metadata. Calculations are monthly regardless.
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnually  = "annually"

	// DefaultCurrency is the display currency when none is given
	DefaultCurrency = "USD"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "leases.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for portfolio files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultServiceName is the service name reported to tracing backends
	DefaultServiceName = "lease-amortization"

	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"
)
