package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all teddy configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Companion CompanionConfig `yaml:"companion"`
	Reminders ReminderConfig  `yaml:"reminders"`
	Rewards   RewardConfig    `yaml:"rewards"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Timezone is the IANA zone used to decide calendar days and weeks.
	// Empty means the system local zone.
	Timezone string `yaml:"timezone" env:"TEDDY_TIMEZONE"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"TEDDY_DB_PATH"`
}

type CompanionConfig struct {
	Name string `yaml:"name" env:"TEDDY_COMPANION_NAME"`
}

type ReminderConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"TEDDY_REMINDER_POLL_INTERVAL"`
	DueWindow    time.Duration `yaml:"due_window" env:"TEDDY_REMINDER_DUE_WINDOW"`
}

// RewardConfig holds the XP awarded outside the habit formula.
type RewardConfig struct {
	TaskLow    int `yaml:"task_low"`
	TaskMedium int `yaml:"task_medium"`
	TaskHigh   int `yaml:"task_high"`
	Goal       int `yaml:"goal"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" env:"TEDDY_LOG_LEVEL"`
	Development bool   `yaml:"development" env:"TEDDY_LOG_DEVELOPMENT"`
}

func DefaultConfig() *Config {
	return &Config{
		Companion: CompanionConfig{Name: "Teddy"},
		Reminders: ReminderConfig{
			PollInterval: time.Minute,
			DueWindow:    time.Minute,
		},
		Rewards: RewardConfig{
			TaskLow:    10,
			TaskMedium: 20,
			TaskHigh:   30,
			Goal:       50,
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// DefaultPath returns ~/.teddy/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".teddy", "config.yaml"), nil
}

// Load reads the YAML file at path on top of the defaults, then applies
// variables from a .env file in the working directory and the process
// environment. A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Reminders.PollInterval <= 0 {
		return fmt.Errorf("reminders.poll_interval must be positive, got %s", c.Reminders.PollInterval)
	}
	if c.Reminders.DueWindow <= 0 {
		return fmt.Errorf("reminders.due_window must be positive, got %s", c.Reminders.DueWindow)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for name, v := range map[string]int{
		"rewards.task_low":    c.Rewards.TaskLow,
		"rewards.task_medium": c.Rewards.TaskMedium,
		"rewards.task_high":   c.Rewards.TaskHigh,
		"rewards.goal":        c.Rewards.Goal,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

// Location resolves Timezone, falling back to time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
