package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/cogload/cost"
	"github.com/ayoisaiah/cogload/ledger"
	"github.com/ayoisaiah/cogload/optimizer"
	"github.com/ayoisaiah/cogload/recovery"
	"github.com/ayoisaiah/cogload/vitals"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyDailyBudget          = "budget.daily"
	keyWorkStart            = "schedule.work_start"
	keyWorkEnd              = "schedule.work_end"
	keyDays                 = "schedule.days"
	keyAfternoonCutoff      = "cost.afternoon_cutoff"
	keyProximityWindow      = "cost.proximity_window"
	keyProximityIncrement   = "cost.proximity_increment"
	keyBaselineOffset       = "vitals.baseline_offset"
	keyMaxCostDelta         = "vitals.max_cost_delta"
	keyAggregation          = "vitals.aggregation"
	keyPersonalize          = "vitals.personalize"
	keyMaxSlots             = "recovery.max_slots"
	keySessionUser          = "session.user"
	keySessionCmd           = "session.cmd"
	keyNotificationsEnabled = "notifications.enabled"
	keyWatchSchedule        = "watch.schedule"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
)

// DefaultWatchSchedule checks the budget every half hour during work hours.
const DefaultWatchSchedule = "*/30 9-17 * * 1-5"

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing file is created with the defaults, including any values
// collected by a prompt that ran before it.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	costDefaults := cost.DefaultParams()
	optDefaults := optimizer.DefaultParams()

	v.SetDefault(keyDailyBudget, ledger.DefaultDailyBudget)
	v.SetDefault(keyWorkStart, optDefaults.WorkStart)
	v.SetDefault(keyWorkEnd, optDefaults.WorkEnd)
	v.SetDefault(keyDays, optDefaults.Days)
	v.SetDefault(keyAfternoonCutoff, costDefaults.AfternoonCutoff)
	v.SetDefault(keyProximityWindow, costDefaults.ProximityWindow.String())
	v.SetDefault(keyProximityIncrement, costDefaults.ProximityIncrement)
	v.SetDefault(keyBaselineOffset, 0)
	v.SetDefault(keyMaxCostDelta, vitals.DefaultMaxCostDelta)
	v.SetDefault(keyAggregation, vitals.Median)
	v.SetDefault(keyPersonalize, true)
	v.SetDefault(keyMaxSlots, recovery.DefaultParams().MaxSlots)
	v.SetDefault(keySessionUser, defaultUser())
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyWatchSchedule, DefaultWatchSchedule)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)

	if c.Schedule.WorkEnd != 0 {
		v.SetDefault(keyWorkStart, c.Schedule.WorkStart)
		v.SetDefault(keyWorkEnd, c.Schedule.WorkEnd)
	}

	if c.Budget.Daily != 0 {
		v.SetDefault(keyDailyBudget, c.Budget.Daily)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	cli := c.CLI

	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.CLI = cli

	return nil
}
