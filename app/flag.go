package app

import "github.com/urfave/cli/v2"

// Global flags. They must appear before the command name.
var (
	userFlag = &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "The user whose sessions and baseline are used (default: $USER)",
	}

	budgetFlag = &cli.Float64Flag{
		Name:    "budget",
		Aliases: []string{"b"},
		Usage:   "Daily cognitive budget in points (default: 20)",
	}

	workStartFlag = &cli.IntFlag{
		Name:  "work-start",
		Usage: "Hour of the day work starts (default: 9)",
	}

	workEndFlag = &cli.IntFlag{
		Name:  "work-end",
		Usage: "Hour of the day work ends (default: 17)",
	}

	aggregationFlag = &cli.StringFlag{
		Name:  "aggregation",
		Usage: "How reading deltas are combined at the end of a session: mean, median or p90",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable overdraft desktop notifications",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug messages to the log file",
	}
)

// Command flags.
var (
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the result as JSON",
	}

	asOfFlag = &cli.StringFlag{
		Name:  "as-of",
		Usage: "Evaluate at this time instead of now (e.g. 'friday 3pm')",
	}

	weekFlag = &cli.StringFlag{
		Name:    "week",
		Aliases: []string{"w"},
		Usage:   "Any date in the week to use (e.g. 'next monday'). Defaults to the current week",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip confirmation prompts",
	}

	sampleFlag = &cli.BoolFlag{
		Name:  "sample",
		Usage: "Import the bundled sample week",
	}

	titleFlag = &cli.StringFlag{
		Name:    "title",
		Aliases: []string{"t"},
		Usage:   "Event title",
	}

	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "Event description, used for classification",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Start time (e.g. 'tomorrow 10am' or '2026-03-02 14:00')",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "End time. Either this or --duration is required",
	}

	durationFlag = &cli.DurationFlag{
		Name:  "duration",
		Usage: "Event length (e.g. 45m or 1h30m)",
	}

	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "Event type: meeting, deep_work, admin or recovery. Guessed from the title when omitted",
	}

	participantsFlag = &cli.IntFlag{
		Name:    "participants",
		Aliases: []string{"p"},
		Usage:   "Number of people attending, including you",
	}

	agendaFlag = &cli.BoolFlag{
		Name:  "agenda",
		Usage: "Whether the meeting has an agenda (--agenda=false to record that it has none)",
	}

	toolSwitchFlag = &cli.BoolFlag{
		Name:  "tool-switch",
		Usage: "Whether the event forces a switch of tools or context",
	}

	flexibleFlag = &cli.BoolFlag{
		Name:  "flexible",
		Usage: "Whether the optimizer may move the event (--flexible=false pins it)",
	}

	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "When the event finished. Defaults to now",
	}

	eventFlag = &cli.StringFlag{
		Name:  "event",
		Usage: "Link the session to an event so its cost is reconciled",
	}

	onlyFlag = &cli.StringSliceFlag{
		Name:  "only",
		Usage: "Apply only the changes for these event ids (comma-delimited)",
	}

	resetFlag = &cli.BoolFlag{
		Name:  "reset",
		Usage: "Discard the learned baseline and start calibrating again",
	}
)
