package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.UI.AnimationDuration())
	assert.InDelta(t, DefaultImportRate, cfg.Import.Rate, 1e-9)
	assert.Equal(t, DefaultImportBurst, cfg.Import.Burst)
}

func TestInit_ReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  url: https://budget.example.com/
  timeout: 5s
logging:
  level: debug
  format: json
`), 0600))

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://budget.example.com", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			API:      APIConfig{URL: DefaultAPIURL},
			Database: DatabaseConfig{Path: "/tmp/finpilot.db"},
			Logging:  LoggingConfig{Level: "info", Format: "console"},
			UI:       UIConfig{AnimationMS: 100},
			Import:   ImportConfig{Rate: 1, Burst: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.API.URL = "" }, wantMsg: "api.url is required"},
		{name: "relative url", mutate: func(c *Config) { c.API.URL = "budget" }, wantMsg: "not an absolute URL"},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = -time.Second }, wantMsg: "api.timeout"},
		{name: "no database", mutate: func(c *Config) { c.Database.Path = " " }, wantMsg: "database.path"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantMsg: "log level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantMsg: "invalid log format"},
		{name: "zero rate", mutate: func(c *Config) { c.Import.Rate = 0 }, wantMsg: "import.rate"},
		{name: "zero burst", mutate: func(c *Config) { c.Import.Burst = 0 }, wantMsg: "import.burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Config{Logging: LoggingConfig{Format: "xml"}}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"api.url", "database.path", "log format", "import.rate", "import.burst"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FINPILOT_TEST_NEW=from-file\nFINPILOT_TEST_SET=from-file\n"), 0600))

	t.Setenv("FINPILOT_TEST_SET", "from-env")
	t.Setenv("FINPILOT_TEST_NEW", "")
	require.NoError(t, os.Unsetenv("FINPILOT_TEST_NEW"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("FINPILOT_TEST_NEW"))
	assert.Equal(t, "from-env", os.Getenv("FINPILOT_TEST_SET"))
}

func TestLoadPlaidConfig(t *testing.T) {
	t.Setenv("PLAID_CLIENT_ID", "")
	t.Setenv("PLAID_SECRET", "")
	t.Setenv("PLAID_ENV", "")
	t.Setenv("PLAID_ACCESS_TOKEN", "")

	v := viper.New()
	_, err := LoadPlaidConfig(v)
	assert.ErrorContains(t, err, "client ID is required")

	v.Set("plaid.client_id", "client")
	v.Set("plaid.secret", "secret")
	t.Setenv("PLAID_ACCESS_TOKEN", "access-sandbox-1")

	cfg, err := LoadPlaidConfig(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultPlaidEnvironment, cfg.Environment)
	assert.Equal(t, "access-sandbox-1", cfg.AccessToken)

	t.Setenv("PLAID_ENV", "production")
	cfg, err = LoadPlaidConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)

	v.Set("plaid.environment", "staging")
	_, err = LoadPlaidConfig(v)
	assert.ErrorContains(t, err, "invalid Plaid environment")
}

func TestLoadSheetsConfig(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	v := viper.New()
	_, err := LoadSheetsConfig(v)
	assert.ErrorContains(t, err, "no authentication method")

	v.Set("sheets.client_id", "id")
	v.Set("sheets.client_secret", "secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")
	v.Set("sheets.spreadsheet_name", "Household")

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "refresh", cfg.RefreshToken)
	assert.Equal(t, "Household", cfg.SpreadsheetName)

	v.Set("sheets.service_account_path", "/etc/finpilot/sa.json")
	_, err = LoadSheetsConfig(v)
	assert.ErrorContains(t, err, "multiple authentication methods")
}

func TestLoadImportRules(t *testing.T) {
	v := viper.New()

	rules, err := LoadImportRules(v)
	require.NoError(t, err)
	assert.NotEmpty(t, rules)

	v.Set("import.rules", []map[string]any{
		{"name": "Climbing gym", "category": "Health", "pattern": `\bMOVEMENT\b`, "priority": 110},
	})
	withCustom, err := LoadImportRules(v)
	require.NoError(t, err)
	require.Len(t, withCustom, len(rules)+1)
	assert.Equal(t, "Climbing gym", withCustom[0].Name)
	assert.Equal(t, "Health", withCustom[0].Category)
	assert.Equal(t, 110, withCustom[0].Priority)

	v.Set("import.rules", []map[string]any{{"name": "Bad", "priority": "high"}})
	_, err = LoadImportRules(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSimpleFINToken(t *testing.T) {
	t.Setenv("SIMPLEFIN_TOKEN", "from-env")

	v := viper.New()
	assert.Equal(t, "from-env", SimpleFINToken(v))

	v.Set("simplefin.token", "from-config")
	assert.Equal(t, "from-config", SimpleFINToken(v))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("FINPILOT_TEST_DIR", "/srv/data")

	assert.Empty(t, ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "budget.db"), ExpandPath("~/budget.db"))
	assert.Equal(t, "/srv/data/budget.db", ExpandPath("$FINPILOT_TEST_DIR/budget.db"))
}
