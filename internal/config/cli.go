package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	AsOf          string
	User          string
	SessionCmd    string
	Aggregation   string
	Budget        float64
	WorkStart     int
	WorkEnd       int
	DisableNotify bool
	JSON          bool
	Debug         bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			AsOf:          ctx.String("as-of"),
			User:          ctx.String("user"),
			SessionCmd:    ctx.String("session-cmd"),
			Aggregation:   ctx.String("aggregation"),
			Budget:        ctx.Float64("budget"),
			WorkStart:     ctx.Int("work-start"),
			WorkEnd:       ctx.Int("work-end"),
			DisableNotify: ctx.Bool("disable-notification"),
			JSON:          ctx.Bool("json"),
			Debug:         ctx.Bool("debug"),
		}

		if ctx.IsSet("work-start") || ctx.IsSet("work-end") {
			if !ctx.IsSet("work-start") {
				opts.WorkStart = c.Schedule.WorkStart
			}

			if !ctx.IsSet("work-end") {
				opts.WorkEnd = c.Schedule.WorkEnd
			}
		} else {
			opts.WorkStart, opts.WorkEnd = -1, -1
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if opts.Budget > 0 {
		c.Budget.Daily = opts.Budget
	}

	if opts.WorkStart >= 0 && opts.WorkEnd >= 0 {
		c.Schedule.WorkStart = opts.WorkStart
		c.Schedule.WorkEnd = opts.WorkEnd
	}

	if opts.User != "" {
		c.Session.User = opts.User
	}

	if opts.SessionCmd != "" {
		c.Session.Cmd = opts.SessionCmd
	}

	if opts.Aggregation != "" {
		c.Vitals.Aggregation = opts.Aggregation
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	c.CLI.JSON = opts.JSON
	c.CLI.Debug = opts.Debug

	asOf, err := timeutil.FromStr(opts.AsOf, now)
	if err != nil {
		return errInvalidCLITime.Fmt("as-of").Wrap(err)
	}

	c.CLI.AsOf = asOf

	return nil
}
