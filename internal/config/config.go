// Package config defines the data structures related to configuration and
// includes functions for loading, parsing and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/configprocessor"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a scenario run.
type Configuration struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	Simulation SimulationConfig `yaml:"simulation,omitempty"`
	Cache      CacheConfig      `yaml:"cache,omitempty"`
	Store      StoreConfig      `yaml:"store,omitempty"`
	Baseline   dataset.Baseline `yaml:"baseline"`
	Scenarios  []Scenario       `yaml:"scenarios"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// SimulationConfig controls the simulator.
type SimulationConfig struct {
	// Seed makes neutral custom scenarios reproducible. Zero uses an
	// unseeded source.
	Seed uint64 `yaml:"seed,omitempty"`
}

// CacheConfig selects the result cache. An empty RedisAddress keeps results
// in memory.
type CacheConfig struct {
	RedisAddress string `yaml:"redisAddress,omitempty"`
	TTL          string `yaml:"ttl,omitempty"`
}

// StoreConfig selects where saved runs go. An empty DatabaseURL keeps them in
// memory.
type StoreConfig struct {
	DatabaseURL string `yaml:"databaseURL,omitempty"`
}

// Scenario is one configured scenario. Custom scenarios are described by
// free text; predefined ones carry parameters including scenario_type.
type Scenario struct {
	Name        string                 `yaml:"name"`
	Active      bool                   `yaml:"active"`
	Custom      bool                   `yaml:"custom,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Parameters  map[string]interface{} `yaml:"parameters,omitempty"`
}

// Selection converts the configured scenario into a resolver selection.
func (s Scenario) Selection() scenario.Selection {
	if s.Custom {
		return scenario.Selection{Custom: true, Text: s.Description}
	}
	return scenario.Selection{
		Predefined: &scenario.Predefined{
			ID:          s.Name,
			Name:        s.Name,
			Description: s.Description,
			Parameters:  scenario.Parameters(s.Parameters),
		},
	}
}

// Type returns the configured scenario_type, or custom for custom scenarios.
func (s Scenario) Type() string {
	if s.Custom {
		return constants.ScenarioTypeCustom
	}
	return cast.ToString(s.Parameters[constants.ParamScenarioType])
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	projectNames := make([]string, 0, len(c.Baseline.Projects))
	for _, project := range c.Baseline.Projects {
		projectNames = append(projectNames, project.Name)
	}

	baseline := configprocessor.BaselineInfo{
		Months:       c.Baseline.Months,
		InflowCount:  len(c.Baseline.Inflows),
		OutflowCount: len(c.Baseline.Outflows),
		NetFlowCount: len(c.Baseline.NetFlow),
		ProjectNames: projectNames,
	}

	var scenarios []configprocessor.ScenarioInfo
	for _, s := range c.Scenarios {
		scenarios = append(scenarios, configprocessor.ScenarioInfo{
			Name:        s.Name,
			Active:      s.Active,
			Custom:      s.Custom,
			Type:        s.Type(),
			Description: s.Description,
			ProjectName: cast.ToString(s.Parameters[constants.ParamProjectName]),
		})
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateConfiguration(baseline, scenarios)
}
