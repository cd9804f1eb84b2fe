// Package config defines the data structures related to configuration and
// includes functions for loading, validating and processing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for lease-amortization.
type Configuration struct {
	Logging  LoggingConfig      `yaml:"logging,omitempty"`
	Output   OutputConfig       `yaml:"output,omitempty"`
	Schedule lease.TableOptions `yaml:"schedule,omitempty"`
	Leases   []Lease            `yaml:"leases"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("LEASE")
	v.AutomaticEnv()
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("schedule.maxRows", constants.DefaultMaxRows)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Contracts converts the configured leases into contracts, normalising
// commencement dates to YYYY-MM.
func (c *Configuration) Contracts() ([]contract.Contract, error) {
	contracts := make([]contract.Contract, 0, len(c.Leases))
	for i, l := range c.Leases {
		converted, err := l.Contract()
		if err != nil {
			return nil, fmt.Errorf("lease %d: %w", i+1, err)
		}
		contracts = append(contracts, converted)
	}
	return contracts, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	contracts, err := c.Contracts()
	if err != nil {
		return []string{err.Error()}
	}

	validator := validation.ConfigValidator{
		Contracts: contracts,
		Schedule:  c.Schedule,
	}
	return validator.ValidateAll()
}
