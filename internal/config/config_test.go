package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("reads a full config file", func(t *testing.T) {
		path := writeConfigFile(t, `
transactions_file: inputs/transactions.csv
declarations_file: inputs/declarations.csv
templates_dir: blank_schedules
outputs_dir: runs
spreadsheet: libre
log_level: debug
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "inputs/transactions.csv", cfg.TransactionsFile)
		assert.Equal(t, "inputs/declarations.csv", cfg.DeclarationsFile)
		assert.Equal(t, "blank_schedules", cfg.TemplatesDir)
		assert.Equal(t, "runs", cfg.OutputsDir)
		assert.Equal(t, "libre", cfg.Spreadsheet)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("unset fields fall back to defaults", func(t *testing.T) {
		path := writeConfigFile(t, "spreadsheet: excel\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "excel", cfg.Spreadsheet)
		assert.Equal(t, "transactions.csv", cfg.TransactionsFile)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := writeConfigFile(t, "transactions_file: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects a bad log level", func(t *testing.T) {
		path := writeConfigFile(t, "log_level: verbose\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log_level")
	})

	t.Run("rejects a bad spreadsheet flavour", func(t *testing.T) {
		path := writeConfigFile(t, "spreadsheet: openoffice\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "spreadsheet")
	})
}

func TestValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})

	t.Run("empty spreadsheet is valid at load time", func(t *testing.T) {
		cfg := Default()
		cfg.Spreadsheet = ""
		assert.NoError(t, cfg.Validate())
	})
}
