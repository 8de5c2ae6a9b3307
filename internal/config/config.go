// =============================================================================
// Gift Aid Schedule Builder - Configuration Module
// =============================================================================
//
// Configuration is a single optional YAML file. It names the two input CSVs,
// the directory holding the blank schedule templates, the outputs root that
// run directories are allocated under, the spreadsheet flavour, and the log
// level. Every setting has a sensible default, so a charity treasurer can
// drop transactions.csv and declarations.csv next to the binary and run it
// with no configuration at all.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// TransactionsFile is the path to the bank transactions CSV.
	// Default: "transactions.csv"
	TransactionsFile string `yaml:"transactions_file"`

	// DeclarationsFile is the path to the donor declarations CSV.
	// Default: "declarations.csv"
	DeclarationsFile string `yaml:"declarations_file"`

	// TemplatesDir is the directory containing the blank schedule
	// spreadsheets. Default: "templates"
	TemplatesDir string `yaml:"templates_dir"`

	// OutputsDir is the root under which each run's date-stamped output
	// directory is created. Default: "outputs"
	OutputsDir string `yaml:"outputs_dir"`

	// Spreadsheet is the schedule flavour to produce: "excel" or "libre".
	// There is no default - the operator must say which office suite they
	// use, either here or with the --spreadsheet flag.
	Spreadsheet string `yaml:"spreadsheet"`

	// LogLevel controls the verbosity of diagnostic logging.
	// Valid values: "debug", "info", "warn", "error". Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		TransactionsFile: "transactions.csv",
		DeclarationsFile: "declarations.csv",
		TemplatesDir:     "templates",
		OutputsDir:       "outputs",
		LogLevel:         "info",
	}
}

// Load reads the configuration file at path. A missing file is not an
// error - defaults apply, and flags can still override them. Unset fields in
// a present file also fall back to their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.TransactionsFile == "" {
		c.TransactionsFile = defaults.TransactionsFile
	}
	if c.DeclarationsFile == "" {
		c.DeclarationsFile = defaults.DeclarationsFile
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = defaults.TemplatesDir
	}
	if c.OutputsDir == "" {
		c.OutputsDir = defaults.OutputsDir
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// Validate checks the settings that can be checked without touching the
// filesystem. Path existence is checked at the point of use, where the
// error messages can say what the file was needed for.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf(
			"log_level must be one of \"debug\", \"info\", \"warn\", or "+
				"\"error\", got %q", c.LogLevel,
		)
	}
	switch c.Spreadsheet {
	case "", "excel", "libre":
	default:
		return fmt.Errorf(
			"spreadsheet must be either \"excel\" or \"libre\", got %q",
			c.Spreadsheet,
		)
	}
	return nil
}
