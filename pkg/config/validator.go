package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nodewee/doc-to-json/pkg/utils"
	"golang.org/x/net/html/charset"
)

// ConfigValidator collects every configuration problem before failing
type ConfigValidator struct{}

// NewConfigValidator creates a configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate validates the configuration
func (v *ConfigValidator) Validate(c *Config) error {
	var errors []string

	if strings.TrimSpace(c.OutputDir) == "" {
		errors = append(errors, "output directory must not be empty")
	}
	if err := v.validateTesseract(c); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateCSV(c); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateLogLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return utils.NewValidationError("configuration validation failed",
			fmt.Errorf("validation errors: %s", strings.Join(errors, "; ")))
	}

	return nil
}

// validateTesseract checks the OCR language only. A missing or stale binary
// is reported by the OCR engine, and only image files fail.
func (v *ConfigValidator) validateTesseract(c *Config) error {
	if strings.TrimSpace(c.TesseractLanguage) == "" {
		return fmt.Errorf("tesseract language must not be empty")
	}
	return nil
}

func (v *ConfigValidator) validateCSV(c *Config) error {
	if utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character: %q", c.CSVDelimiter)
	}
	switch c.CSVDelimiter {
	case "\"", "\r", "\n":
		return fmt.Errorf("invalid csv delimiter: %q", c.CSVDelimiter)
	}
	if enc, _ := charset.Lookup(c.CSVEncoding); enc == nil {
		return fmt.Errorf("unknown csv encoding: %s", c.CSVEncoding)
	}
	return nil
}

func (v *ConfigValidator) validateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}

	for _, valid := range validLevels {
		if strings.ToLower(level) == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid log level: %s", level)
}
