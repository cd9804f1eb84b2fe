package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/lease-amortization/internal/config"
	"github.com/iwvelando/lease-amortization/internal/logging"
	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/csvimport"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/output"
	"github.com/iwvelando/lease-amortization/pkg/portfolio"
	"github.com/iwvelando/lease-amortization/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	csvLocation := flag.String("csv", "", "path to a contract CSV to use instead of the configured leases")
	fullTerm := flag.Bool("full", false, "print every period of each lease instead of the configured row limit")
	flag.Parse()

	conf, err := loadConfiguration(*configLocation, *csvLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *fullTerm {
		conf.Schedule = lease.FullTermOptions(conf.Schedule.UseEscalatedPayments)
	}

	entries := calculate(logger, conf, *csvLocation)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, entries)
		if len(entries) > 1 {
			output.PortfolioPretty(os.Stdout, portfolio.Build(logger, entries))
		}
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, entries)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, entries)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// loadConfiguration reads the YAML configuration. When a contract CSV is
// given the configuration file is optional and only supplies settings.
func loadConfiguration(configLocation, csvLocation string) (*config.Configuration, error) {
	if csvLocation != "" {
		if _, err := os.Stat(configLocation); err != nil {
			return &config.Configuration{
				Output:   config.OutputConfig{Format: constants.OutputFormatPretty},
				Schedule: lease.DefaultTableOptions(),
			}, nil
		}
	}
	return config.LoadConfiguration(configLocation)
}

func calculate(logger *zap.Logger, conf *config.Configuration, csvLocation string) []portfolio.Entry {
	if csvLocation == "" {
		// Validate configuration and display any warnings
		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}

		entries, err := conf.ProcessLeases(logger)
		if err != nil {
			logger.Fatal("failed to process leases",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return entries
	}

	file, err := os.Open(csvLocation)
	if err != nil {
		logger.Fatal("failed to open contract CSV",
			zap.String("op", "main"),
			zap.String("path", csvLocation),
			zap.Error(err),
		)
	}
	defer func() {
		_ = file.Close()
	}()

	contracts, err := csvimport.Read(file)
	if err != nil {
		logger.Fatal("failed to import contract CSV",
			zap.String("op", "main"),
			zap.String("path", csvLocation),
			zap.Error(err),
		)
	}

	validator := validation.ConfigValidator{Contracts: contracts, Schedule: conf.Schedule}
	for _, warning := range validator.ValidateAll() {
		logger.Warn("Contract warning: "+warning,
			zap.String("op", "main"),
		)
	}

	entries, err := config.Calculate(logger, contracts, conf.Schedule)
	if err != nil {
		logger.Fatal("failed to calculate leases",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	return entries
}
