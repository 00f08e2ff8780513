package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the config and data directories.
const AppName = "finpilot"

// EnvPrefix prefixes environment overrides, e.g. FINPILOT_API_URL.
const EnvPrefix = "FINPILOT"

// Defaults.
const (
	DefaultAPIURL      = "http://localhost:8000"
	DefaultAnimationMS = 2000
	DefaultImportRate  = 5.0
	DefaultImportBurst = 1
)

// Config is the resolved application configuration.
type Config struct {
	API      APIConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	UI       UIConfig
	Import   ImportConfig
}

// APIConfig locates the remote budget service.
type APIConfig struct {
	URL     string
	Timeout time.Duration
}

// DatabaseConfig locates the local SQLite file.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
}

// UIConfig tunes the terminal dashboard.
type UIConfig struct {
	AnimationMS int
}

// AnimationDuration is the counter animation length.
func (u UIConfig) AnimationDuration() time.Duration {
	return time.Duration(u.AnimationMS) * time.Millisecond
}

// ImportConfig paces statement imports.
type ImportConfig struct {
	Rate  float64
	Burst int
}

// DefaultDatabasePath is $HOME/.local/share/finpilot/finpilot.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", AppName+".db")
	}
	return filepath.Join(home, ".local", "share", AppName, AppName+".db")
}

// DefaultConfigDir is $HOME/.config/finpilot.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("ui.animation_ms", DefaultAnimationMS)
	v.SetDefault("import.rate", DefaultImportRate)
	v.SetDefault("import.burst", DefaultImportBurst)
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Init configures v to read cfgFile (or the standard locations) and the
// environment, and reads the config file if one exists.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		dir, err := DefaultConfigDir()
		if err != nil {
			return err
		}
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			URL:     strings.TrimRight(v.GetString("api.url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		UI: UIConfig{
			AnimationMS: v.GetInt("ui.animation_ms"),
		},
		Import: ImportConfig{
			Rate:  v.GetFloat64("import.rate"),
			Burst: v.GetInt("import.burst"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.API.URL == "" {
		problems = append(problems, "api.url is required")
	} else if u, err := url.Parse(c.API.URL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("api.url %q is not an absolute URL", c.API.URL))
	}
	if c.API.Timeout < 0 {
		problems = append(problems, "api.timeout must not be negative")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		problems = append(problems, "database.path is required")
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format: %s", c.Logging.Format))
	}
	if c.UI.AnimationMS < 0 {
		problems = append(problems, "ui.animation_ms must not be negative")
	}
	if c.Import.Rate <= 0 {
		problems = append(problems, "import.rate must be greater than zero")
	}
	if c.Import.Burst < 1 {
		problems = append(problems, "import.burst must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
