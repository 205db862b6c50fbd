// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"

	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
)

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

var outputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat checks a report format. Empty means pretty; names are
// matched exactly.
func ValidateOutputFormat(format string) error {
	if format == "" || slices.Contains(outputFormats, format) {
		return nil
	}
	return fmt.Errorf("expected output format of %s, got %q", strings.Join(outputFormats, " or "), format)
}

// ValidateLogLevel checks a logging level. Empty means the default.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil
	}
	for _, l := range logLevels {
		if strings.EqualFold(level, l) {
			return nil
		}
	}
	return fmt.Errorf("expected log level of %s, got %s", strings.Join(logLevels, ", "), level)
}

// ValidateLogFormat checks a logging format. Empty means the default.
func ValidateLogFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "json", "console":
		return nil
	default:
		return fmt.Errorf("expected log format of json or console, got %s", format)
	}
}

// ValidateRedisAddress checks a host:port cache address. Empty disables Redis.
func ValidateRedisAddress(addr string) error {
	if addr == "" {
		return nil
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	if port == "" {
		return fmt.Errorf("invalid redis address %q: missing port", addr)
	}
	return nil
}

// ValidateDatabaseURL checks a PostgreSQL connection URL. Empty disables the
// database store.
func ValidateDatabaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid database URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("expected a postgres:// database URL, got scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("database URL has no host")
	}
	return nil
}
