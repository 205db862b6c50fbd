// Package constants provides shared constants for the cashflow scenario engine.
package constants

// Scenario type identifiers as they appear in scenario parameters
// (parameters.scenario_type) and configuration files.
const (
	ScenarioTypePaymentDelay    = "payment_delay"
	ScenarioTypeCostReduction   = "cost_reduction"
	ScenarioTypeRevenueIncrease = "revenue_increase"
	ScenarioTypeProjectDelay    = "project_delay"
	ScenarioTypeCustom          = "custom"
)

// Scenario parameter keys.
const (
	ParamScenarioType        = "scenario_type"
	ParamDelayDays           = "delay_days"
	ParamReductionPercentage = "reduction_percentage"
	ParamIncreasePercentage  = "increase_percentage"
	ParamProjectName         = "project_name"
	ParamDelayMonths         = "delay_months"
	ParamCustomDescription   = "custom_description"
)

// Scenario parameter defaults, applied only when a parameter is absent.
const (
	DefaultDelayDays           = 30.0
	DefaultReductionPercentage = 10.0
	DefaultIncreasePercentage  = 15.0
	DefaultProjectDelayMonths  = 2.0
)

// Percentage bounds for cost_reduction and revenue_increase.
const (
	MinAdjustmentPercentage = 1.0
	MaxAdjustmentPercentage = 50.0
)

// DaysPerMonth converts delay days into whole delayed months.
const DaysPerMonth = 30.0

// MaxPaymentDelayDays bounds payment delays (100 years).
const MaxPaymentDelayDays = 36500.0

// MaxPredefinedProjectScenarios caps the project-delay entries added to the
// predefined catalog.
const MaxPredefinedProjectScenarios = 2

// Risk levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Financial constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// FloatTolerance is the tolerance for comparing derived monthly sums
	FloatTolerance = 1e-6

	// MinProfitForPercentage is the absolute net profit at or below which the
	// profit impact percentage is reported as zero.
	MinProfitForPercentage = 1000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCacheKeyPrefix namespaces simulation results in shared caches
	DefaultCacheKeyPrefix = "cashflow:simulation:"
)
