package main

import (
	"flag"
	"fmt"

	"github.com/MahendraD2/CashFlowManagement/internal/analysis"
	"github.com/MahendraD2/CashFlowManagement/internal/config"
	"github.com/MahendraD2/CashFlowManagement/internal/logging"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/MahendraD2/CashFlowManagement/pkg/output"
	"github.com/MahendraD2/CashFlowManagement/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, warning, error)")
	seed := flag.Uint64("seed", 0, "random seed override for neutral custom scenarios")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	level := conf.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	if err := validation.ValidateLogLevel(level); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid logging configuration\", \"error\": \"%v\"}\n", err)
		return
	}
	if err := validation.ValidateLogFormat(conf.Logging.Format); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid logging configuration\", \"error\": \"%v\"}\n", err)
		return
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
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

	if *seed != 0 {
		conf.Simulation.Seed = *seed
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := analysis.RunConfiguration(logger, conf)
	if err != nil {
		logger.Fatal("failed to simulate scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, result := range results {
		for _, warning := range result.Warnings {
			logger.Warn(warning,
				zap.String("op", "main"),
				zap.String("scenario", result.Name),
			)
		}
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}
