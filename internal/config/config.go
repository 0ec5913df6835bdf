package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/chupohan/brigade-duty/pkg/core/civiltime"
)

const configFileName = "brigade_config.yaml"

// SheetsConfig holds the Google Sheets sync settings. Sync is disabled when
// the spreadsheet ID is empty.
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty"`
	// Tab names match what the brigade's reviewers read; the reference
	// deployment uses the Chinese labels 救護紀錄 and 協勤時數.
	RescueTab   string `yaml:"rescueTab,omitempty"`
	ActivityTab string `yaml:"activityTab,omitempty"`
	// CredentialsFile points at a Google service-account key JSON.
	CredentialsFile string `yaml:"credentialsFile,omitempty"`
	// SyncRule is an RRULE describing when the scheduled sync runs.
	SyncRule string `yaml:"syncRule,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	Timezone     string       `yaml:"timezone" validate:"required"`
	DatabaseURL  string       `yaml:"databaseURL,omitempty"`
	ListenAddr   string       `yaml:"listenAddr,omitempty"`
	TestAccounts []string     `yaml:"testAccounts,omitempty"`
	Sheets       SheetsConfig `yaml:"sheets,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns a configuration with the reference-deployment defaults.
func Default() *Config {
	return &Config{
		Timezone:   civiltime.DefaultTimezone,
		ListenAddr: ":8080",
		Sheets: SheetsConfig{
			RescueTab:   "救護紀錄",
			ActivityTab: "協勤時數",
			SyncRule:    "FREQ=DAILY;BYHOUR=3;BYMINUTE=0",
		},
	}
}

// Load loads and validates the configuration, looking for the config file
// in the current directory first, then in the user's home directory. With
// no config file present the defaults apply unchanged.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		cfg := Default()
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Missing fields fall back to the defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration struct, the timezone and the sync
// rule syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := civiltime.NewClock(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	if cfg.Sheets.SyncRule != "" {
		if _, err := rrule.StrToRRule(cfg.Sheets.SyncRule); err != nil {
			return fmt.Errorf("invalid sync rule: %w", err)
		}
	}
	return nil
}

// findConfigFile searches for brigade_config.yaml in the current directory
// and the home directory.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
