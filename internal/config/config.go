package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// Server is the DailyQuest backend connection.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Reminder controls the local reminder engine.
	Reminder ReminderConfig `mapstructure:"reminder" yaml:"reminder"`

	// Display holds UI preferences.
	Display DisplayConfig `mapstructure:"display" yaml:"display"`

	// DBPath is the location of the local SQLite task cache.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// ServerConfig holds the backend connection settings.
type ServerConfig struct {
	// BaseURL is the root URL of the DailyQuest backend
	// (e.g. https://dailyquest.example.com).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// PollIntervalSec is how often (in seconds) to sync tasks.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// ReminderConfig holds the reminder engine's timing parameters. The engine
// only sees these through the Scheduler, so tests can shrink them freely.
type ReminderConfig struct {
	// DefaultOffsets seeds the global minutes-before-due reminder list on
	// first run. Per-task offsets override it entirely.
	DefaultOffsets []int `mapstructure:"default_offsets" yaml:"default_offsets"`

	// TickIntervalSec is how often the reminder pipeline evaluates tasks.
	TickIntervalSec int `mapstructure:"tick_interval_sec" yaml:"tick_interval_sec"`

	// MidnightIntervalSec is how often the midnight-rollover watcher
	// checks the wall clock.
	MidnightIntervalSec int `mapstructure:"midnight_interval_sec" yaml:"midnight_interval_sec"`

	// WindowMinutes is the half-width of the trigger window around each
	// offset; an offset o fires when minutes-until-due is in [o-w, o+w].
	WindowMinutes int `mapstructure:"window_minutes" yaml:"window_minutes"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// TickInterval returns the reminder tick interval as a duration.
func (c ReminderConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalSec) * time.Second
}

// MidnightInterval returns the midnight watcher interval as a duration.
func (c ReminderConfig) MidnightInterval() time.Duration {
	return time.Duration(c.MidnightIntervalSec) * time.Second
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dailyquest/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "dailyquest", "config.yaml")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			BaseURL:         "http://localhost:8080",
			PollIntervalSec: 120,
		},
		Reminder: ReminderConfig{
			DefaultOffsets:      []int{60, 10},
			TickIntervalSec:     30,
			MidnightIntervalSec: 60,
			WindowMinutes:       1,
		},
		Display: DisplayConfig{Theme: "default"},
		DBPath:  filepath.Join(home, ".config", "dailyquest", "tasks.db"),
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	def := defaultConfig()
	v.SetDefault("server.base_url", def.Server.BaseURL)
	v.SetDefault("server.poll_interval_sec", def.Server.PollIntervalSec)
	v.SetDefault("reminder.default_offsets", def.Reminder.DefaultOffsets)
	v.SetDefault("reminder.tick_interval_sec", def.Reminder.TickIntervalSec)
	v.SetDefault("reminder.midnight_interval_sec", def.Reminder.MidnightIntervalSec)
	v.SetDefault("reminder.window_minutes", def.Reminder.WindowMinutes)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("db_path", def.DBPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Guard against zero or negative intervals from hand-edited files.
	if cfg.Server.PollIntervalSec <= 0 {
		cfg.Server.PollIntervalSec = def.Server.PollIntervalSec
	}
	if cfg.Reminder.TickIntervalSec <= 0 {
		cfg.Reminder.TickIntervalSec = def.Reminder.TickIntervalSec
	}
	if cfg.Reminder.MidnightIntervalSec <= 0 {
		cfg.Reminder.MidnightIntervalSec = def.Reminder.MidnightIntervalSec
	}
	if cfg.Reminder.WindowMinutes < 0 {
		cfg.Reminder.WindowMinutes = def.Reminder.WindowMinutes
	}
	if len(cfg.Reminder.DefaultOffsets) == 0 {
		cfg.Reminder.DefaultOffsets = def.Reminder.DefaultOffsets
	}

	return cfg, nil
}

// Save writes the configuration back to path as YAML, creating parent
// directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("server.base_url", cfg.Server.BaseURL)
	v.Set("server.poll_interval_sec", cfg.Server.PollIntervalSec)
	v.Set("reminder.default_offsets", cfg.Reminder.DefaultOffsets)
	v.Set("reminder.tick_interval_sec", cfg.Reminder.TickIntervalSec)
	v.Set("reminder.midnight_interval_sec", cfg.Reminder.MidnightIntervalSec)
	v.Set("reminder.window_minutes", cfg.Reminder.WindowMinutes)
	v.Set("display.theme", cfg.Display.Theme)
	v.Set("db_path", cfg.DBPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
