// Package config loads cogload settings from the config file, an optional
// first-run prompt and command-line flags.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/optimizer"
	"github.com/ayoisaiah/cogload/recovery"
)

type (
	// Config holds all configuration settings
	Config struct {
		Schedule      ScheduleConfig     `mapstructure:"schedule"`
		Watch         WatchConfig        `mapstructure:"watch"`
		Session       SessionConfig      `mapstructure:"session"`
		Vitals        VitalsConfig       `mapstructure:"vitals"`
		Cost          CostConfig         `mapstructure:"cost"`
		CLI           CLIConfig          `mapstructure:"-"`
		Budget        BudgetConfig       `mapstructure:"budget"`
		Recovery      RecoveryConfig     `mapstructure:"recovery"`
		Display       DisplayConfig      `mapstructure:"display"`
		Notifications NotificationConfig `mapstructure:"notifications"`
	}

	// BudgetConfig holds the cognitive budget.
	BudgetConfig struct {
		Daily float64 `mapstructure:"daily"`
	}

	// ScheduleConfig holds the working window used for placement.
	ScheduleConfig struct {
		WorkStart int `mapstructure:"work_start"`
		WorkEnd   int `mapstructure:"work_end"`
		Days      int `mapstructure:"days"`
	}

	// CostConfig tunes the cost model.
	CostConfig struct {
		AfternoonCutoff    int           `mapstructure:"afternoon_cutoff"`
		ProximityWindow    time.Duration `mapstructure:"proximity_window"`
		ProximityIncrement float64       `mapstructure:"proximity_increment"`
	}

	// VitalsConfig tunes reading scores and reconciliation.
	VitalsConfig struct {
		Aggregation    string  `mapstructure:"aggregation"`
		BaselineOffset float64 `mapstructure:"baseline_offset"`
		MaxCostDelta   float64 `mapstructure:"max_cost_delta"`
		Personalize    bool    `mapstructure:"personalize"`
	}

	// RecoveryConfig tunes recovery suggestions.
	RecoveryConfig struct {
		MaxSlots int `mapstructure:"max_slots"`
	}

	// SessionConfig holds monitoring session settings.
	SessionConfig struct {
		User string `mapstructure:"user"`
		Cmd  string `mapstructure:"cmd"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// WatchConfig holds the overdraft watch schedule.
	WatchConfig struct {
		Schedule string `mapstructure:"schedule"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// CLIConfig holds per-invocation values that are never written to the
	// config file.
	CLIConfig struct {
		AsOf  time.Time
		JSON  bool
		Debug bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// CostParams returns the cost model parameters.
func (c *Config) CostParams() cost.Params {
	return cost.Params{
		AfternoonCutoff:    c.Cost.AfternoonCutoff,
		ProximityWindow:    c.Cost.ProximityWindow,
		ProximityIncrement: c.Cost.ProximityIncrement,
	}
}

// OptimizerParams returns the placement parameters.
func (c *Config) OptimizerParams() optimizer.Params {
	return optimizer.Params{
		WorkStart:   c.Schedule.WorkStart,
		WorkEnd:     c.Schedule.WorkEnd,
		Days:        c.Schedule.Days,
		DailyBudget: c.Budget.Daily,
	}
}

// RecoveryParams returns the recovery advisor parameters.
func (c *Config) RecoveryParams() recovery.Params {
	return recovery.Params{
		WorkStart:   c.Schedule.WorkStart,
		WorkEnd:     c.Schedule.WorkEnd,
		Days:        c.Schedule.Days,
		MaxSlots:    c.Recovery.MaxSlots,
		DailyBudget: c.Budget.Daily,
	}
}

// Clock returns the time layout for the configured clock style.
func (c *Config) Clock() string {
	if c.Display.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}

	return "default"
}

func (c *Config) String() string {
	return fmt.Sprintf("%+v", *c)
}
