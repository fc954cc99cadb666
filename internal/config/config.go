package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Timer    TimerConfig    `mapstructure:"timer"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
}

// TimerConfig holds the two interval lengths.
type TimerConfig struct {
	Focus time.Duration `mapstructure:"focus"`
	Break time.Duration `mapstructure:"break"`
}

// DatabaseConfig holds sqlite settings for the interval journal.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings. The TUI owns the terminal, so logs go to
// a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// TrackFocus treats terminal focus loss like the timer being hidden.
	TrackFocus bool         `mapstructure:"track_focus"`
	Colors     ColorsConfig `mapstructure:"colors"`
}

// ColorsConfig maps phases to background colors.
type ColorsConfig struct {
	Focus  string `mapstructure:"focus"`
	Break  string `mapstructure:"break"`
	Paused string `mapstructure:"paused"`
}

// Load reads configuration from file and env. Env var overrides use prefix TOMATO_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TOMATO_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tomato"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TOMATO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "tomato")
	v.SetDefault("timer.focus", "25m")
	v.SetDefault("timer.break", "5m")
	v.SetDefault("database.path", filepath.Join(dataDir, "tomato.db"))
	v.SetDefault("log.path", filepath.Join(dataDir, "tomato.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.track_focus", true)
	v.SetDefault("ui.colors.focus", "#1e66f5")
	v.SetDefault("ui.colors.break", "#40a02b")
	v.SetDefault("ui.colors.paused", "#df8e1d")
}

// Validate rejects interval lengths the timer cannot count down.
func (c Config) Validate() error {
	if c.Timer.Focus < time.Second {
		return errors.Errorf("timer.focus must be at least 1s, got %s", c.Timer.Focus)
	}
	if c.Timer.Break < time.Second {
		return errors.Errorf("timer.break must be at least 1s, got %s", c.Timer.Break)
	}
	return nil
}

// Path returns the config file Load reads and Save writes.
func Path() string {
	if path := os.Getenv("TOMATO_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tomato", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir config dir")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("timer.focus", cfg.Timer.Focus.String())
	v.Set("timer.break", cfg.Timer.Break.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.track_focus", cfg.UI.TrackFocus)
	v.Set("ui.colors.focus", cfg.UI.Colors.Focus)
	v.Set("ui.colors.break", cfg.UI.Colors.Break)
	v.Set("ui.colors.paused", cfg.UI.Colors.Paused)

	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
