package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nodewee/doc-to-json/pkg/constants"
)

// Default values
const (
	DefaultLogLevel      = "info"
	DefaultEnableVerbose = false
)

// Config holds application configuration
type Config struct {
	// OutputDir receives one {name}_processed.json per processed file
	OutputDir string `yaml:"output_dir"`

	// External OCR tool
	TesseractPath     string `yaml:"tesseract_path"`
	TesseractLanguage string `yaml:"tesseract_language"`

	// CSV decoding
	CSVDelimiter string `yaml:"csv_delimiter"`
	CSVEncoding  string `yaml:"csv_encoding"`

	LogLevel      string `yaml:"log_level"`
	EnableVerbose bool   `yaml:"verbose"`
}

// NewConfig returns a configuration holding only built-in defaults
func NewConfig() *Config {
	return &Config{
		OutputDir:         constants.DefaultOutputDir,
		TesseractPath:     "",
		TesseractLanguage: constants.DefaultTesseractLanguage,
		CSVDelimiter:      constants.DefaultCSVDelimiter,
		CSVEncoding:       constants.DefaultCSVEncoding,
		LogLevel:          DefaultLogLevel,
		EnableVerbose:     DefaultEnableVerbose,
	}
}

// DefaultConfig loads the configuration file, falling back to defaults with a
// detected tesseract binary when the file cannot be used
func DefaultConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config file, using defaults: %v\n", err)
		cfg = NewConfig()
		cfg.TesseractPath = DetectTesseract()
	}
	return cfg
}

// LoadConfigWithEnvOverrides loads config from file and applies environment variable overrides
func LoadConfigWithEnvOverrides() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

// ApplyEnv overrides fields from environment variables read through getenv
func (c *Config) ApplyEnv(getenv func(string) string) {
	if value := getenv("DOC_JSON_OUTPUT_DIR"); value != "" {
		c.OutputDir = value
	}
	if value := getenv("TESSERACT_PATH"); value != "" {
		c.TesseractPath = value
	}
	if value := getenv("DOC_JSON_TESSERACT_LANG"); value != "" {
		c.TesseractLanguage = value
	}
	if value := getenv("DOC_JSON_CSV_DELIMITER"); value != "" {
		c.CSVDelimiter = value
	}
	if value := getenv("DOC_JSON_CSV_ENCODING"); value != "" {
		c.CSVEncoding = value
	}
	if value := getenv("DOC_JSON_LOG_LEVEL"); value != "" {
		c.LogLevel = value
	}
	if value := getenv("DOC_JSON_VERBOSE"); value != "" {
		c.EnableVerbose = parseBool(value)
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return NewConfigValidator().Validate(c)
}

// Delimiter returns the CSV delimiter as a rune
func (c *Config) Delimiter() rune {
	for _, r := range c.CSVDelimiter {
		return r
	}
	return ','
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{OutputDir: %s, Tesseract: %s (%s), CSV: %q/%s, LogLevel: %s, Verbose: %v}",
		c.OutputDir, c.TesseractPath, c.TesseractLanguage, c.CSVDelimiter, c.CSVEncoding, c.LogLevel, c.EnableVerbose)
}
