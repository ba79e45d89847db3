package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/nodewee/doc-to-json/pkg/constants"
	"github.com/nodewee/doc-to-json/pkg/utils"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yaml"
	AppDirName     = ".doc-to-json"

	// ConfigDirEnv relocates the configuration directory
	ConfigDirEnv = "DOC_JSON_CONFIG_DIR"
)

// GetConfigDir returns the user configuration directory (~/.doc-to-json)
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return utils.DefaultPathUtils.ExpandHome(dir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", utils.WrapError(err, utils.ErrorTypeIO, "failed to get user home directory")
	}
	return filepath.Join(homeDir, AppDirName), nil
}

// GetConfigFilePath returns the full path to the configuration file
func GetConfigFilePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// LoadConfig loads the configuration file, creating it on first use
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to get config file path")
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads configPath, creating a default file with detected
// tool paths when it does not exist yet
func LoadConfigFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return createDefaultConfigFile(configPath)
	}
	return loadConfigFromFile(configPath)
}

// createDefaultConfigFile writes defaults plus the detected tesseract path
func createDefaultConfigFile(configPath string) (*Config, error) {
	cfg := NewConfig()
	cfg.TesseractPath = DetectTesseract()

	if err := SaveConfigTo(configPath, cfg); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to save default config file")
	}
	return cfg, nil
}

// loadConfigFromFile overlays the file's values on the defaults
func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to read config file")
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeValidation, "failed to parse config file")
	}

	// the binary is resolved once here so extractors never probe for it
	if cfg.TesseractPath == "" {
		cfg.TesseractPath = DetectTesseract()
	}
	return cfg, nil
}

// SaveConfig saves configuration to the user configuration file
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return err
	}
	return SaveConfigTo(configPath, cfg)
}

// SaveConfigTo writes cfg as YAML to configPath
func SaveConfigTo(configPath string, cfg *Config) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return utils.WrapError(err, utils.ErrorTypeValidation, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, constants.DefaultFilePermission); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to write config file")
	}
	return nil
}

// DetectTesseract looks for the tesseract binary in PATH and the platform's
// usual install locations. It returns "" when nothing is found.
func DetectTesseract() string {
	for _, candidate := range constants.GetPlatformConfig().TesseractPaths {
		if filepath.IsAbs(candidate) {
			if utils.DefaultPathUtils.IsExecutable(candidate) {
				return utils.NormalizePath(candidate)
			}
			continue
		}
		if found, err := exec.LookPath(candidate); err == nil {
			return utils.NormalizePath(found)
		}
	}
	return ""
}

// ListConfigKeys returns all available configuration keys
func ListConfigKeys() []string {
	return []string{
		"output_dir",
		"tesseract_path",
		"tesseract_language",
		"csv_delimiter",
		"csv_encoding",
		"log_level",
		"verbose",
	}
}

// Value returns the string form of a configuration key
func (c *Config) Value(key string) (string, error) {
	switch key {
	case "output_dir":
		return c.OutputDir, nil
	case "tesseract_path":
		return c.TesseractPath, nil
	case "tesseract_language":
		return c.TesseractLanguage, nil
	case "csv_delimiter":
		return c.CSVDelimiter, nil
	case "csv_encoding":
		return c.CSVEncoding, nil
	case "log_level":
		return c.LogLevel, nil
	case "verbose":
		return strconv.FormatBool(c.EnableVerbose), nil
	default:
		return "", utils.NewValidationError(fmt.Sprintf("unknown config key: %s", key), nil)
	}
}

// SetValue assigns a configuration key from its string form
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "output_dir":
		c.OutputDir = value
	case "tesseract_path":
		c.TesseractPath = value
	case "tesseract_language":
		c.TesseractLanguage = value
	case "csv_delimiter":
		c.CSVDelimiter = value
	case "csv_encoding":
		c.CSVEncoding = value
	case "log_level":
		c.LogLevel = value
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return utils.NewValidationError("verbose must be true or false", err)
		}
		c.EnableVerbose = b
	default:
		return utils.NewValidationError(fmt.Sprintf("unknown config key: %s", key), nil)
	}
	return nil
}

// GetConfigValue gets a specific configuration value by key
func GetConfigValue(key string) (string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Value(key)
}

// SetConfigValue sets a specific configuration value by key and saves the file
func SetConfigValue(key, value string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.SetValue(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return SaveConfig(cfg)
}
