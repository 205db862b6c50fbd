package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MahendraD2/CashFlowManagement/internal/config"
	"github.com/MahendraD2/CashFlowManagement/pkg/validation"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"trace", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := ParseLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		wantErr  bool
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{
			name:     "Defaults",
			enabled:  zapcore.InfoLevel,
			disabled: zapcore.DebugLevel,
		},
		{
			name:     "Console debug",
			cfg:      config.LoggingConfig{Level: "debug", Format: "console"},
			enabled:  zapcore.DebugLevel,
			disabled: zapcore.DebugLevel - 1,
		},
		{
			name:     "Override wins",
			cfg:      config.LoggingConfig{Level: "debug"},
			override: "error",
			enabled:  zapcore.ErrorLevel,
			disabled: zapcore.WarnLevel,
		},
		{
			name:    "Bad format",
			cfg:     config.LoggingConfig{Format: "xml"},
			wantErr: true,
		},
		{
			name:     "Bad override",
			override: "loud",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			core := logger.Core()
			if !core.Enabled(tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if core.Enabled(tt.disabled) {
				t.Errorf("level %v should be disabled", tt.disabled)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scenarios.log")

	logger, err := New(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}

// TestLevelNamesAgreeWithValidation keeps the accepted level names in step
// with the configuration validator.
func TestLevelNamesAgreeWithValidation(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "warning", "error", "WARNING", "trace", "loud"} {
		_, parseErr := ParseLevel(level)
		validateErr := validation.ValidateLogLevel(level)
		if (parseErr == nil) != (validateErr == nil) {
			t.Errorf("level %q: ParseLevel error = %v, ValidateLogLevel error = %v", level, parseErr, validateErr)
		}
	}

	_, err := New(config.LoggingConfig{Format: "xml"}, "")
	if want := validation.ValidateLogFormat("xml"); err == nil || err.Error() != want.Error() {
		t.Errorf("New() format error = %v, expected %v", err, want)
	}
}
