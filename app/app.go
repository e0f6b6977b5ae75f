// Package app wires the cogload command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func eventCommand() *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Add, inspect and edit calendar events",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add an event and show its cost",
				UsageText: "cogload event add --title TITLE --start TIME (--end TIME | --duration D) [OPTIONS]",
				Flags: []cli.Flag{
					titleFlag,
					descriptionFlag,
					startFlag,
					endFlag,
					durationFlag,
					typeFlag,
					participantsFlag,
					agendaFlag,
					toolSwitchFlag,
					flexibleFlag,
					yesFlag,
					asOfFlag,
					jsonFlag,
				},
				Action: withRunner(addEventAction),
			},
			{
				Name:   "list",
				Usage:  "List the events of a week with their cost",
				Flags:  []cli.Flag{weekFlag, asOfFlag, jsonFlag},
				Action: withRunner(listEventsAction),
			},
			{
				Name:      "enrich",
				Usage:     "Record meeting details that affect the cost",
				UsageText: "cogload event enrich ID [--participants N] [--agenda] [--tool-switch]",
				Flags:     []cli.Flag{participantsFlag, agendaFlag, toolSwitchFlag, jsonFlag},
				Action:    withRunner(enrichEventAction),
			},
			{
				Name:      "flex",
				Usage:     "Mark an event as movable, unmovable or unset",
				UsageText: "cogload event flex ID movable|unmovable|unset",
				Action:    withRunner(flexEventAction),
			},
			{
				Name:      "move",
				Usage:     "Move an event to a new start time, keeping its length",
				UsageText: "cogload event move ID --start TIME",
				Flags:     []cli.Flag{startFlag, yesFlag, asOfFlag, jsonFlag},
				Action:    withRunner(moveEventAction),
			},
			{
				Name:      "complete",
				Usage:     "Mark an event as done. Finishing early prorates its cost",
				UsageText: "cogload event complete ID [--at TIME]",
				Flags:     []cli.Flag{atFlag, asOfFlag, jsonFlag},
				Action:    withRunner(completeEventAction),
			},
			{
				Name:      "delete",
				Usage:     "Delete an event",
				UsageText: "cogload event delete ID",
				Flags:     []cli.Flag{yesFlag},
				Action:    withRunner(deleteEventAction),
			},
		},
	}
}

func sessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Track live vitals while you work",
		Subcommands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a monitoring session",
				Flags:  []cli.Flag{eventFlag, asOfFlag, jsonFlag},
				Action: withRunner(startSessionAction),
			},
			{
				Name:      "record",
				Usage:     "Score readings (one JSON object per line) from a file or stdin",
				UsageText: "cogload session record [FILE]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    withRunner(recordSessionAction),
			},
			{
				Name:   "end",
				Usage:  "End the active session and reconcile its cost",
				Flags:  []cli.Flag{asOfFlag, jsonFlag},
				Action: withRunner(endSessionAction),
			},
			{
				Name:   "status",
				Usage:  "Show the active session, or the sessions of the week",
				Flags:  []cli.Flag{weekFlag, asOfFlag, jsonFlag},
				Action: withRunner(sessionStatusAction),
			},
			{
				Name:      "monitor",
				Usage:     "Follow a reading stream live",
				UsageText: "cogload session monitor [FILE]",
				Action:    withRunner(monitorSessionAction),
			},
		},
	}
}

// Get retrieves the cogload app instance.
func Get() *cli.App {
	cogloadApp := &cli.App{
		Name: "cogload",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Cogload estimates the mental cost of your calendar, tracks it against a
		daily budget and suggests how to rearrange the week or recover when you
		run into debt.`,
		UsageText:            "[GLOBAL OPTIONS] COMMAND [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import events from an iCalendar (.ics) or YAML file",
				UsageText: "cogload import FILE | --sample",
				Flags:     []cli.Flag{sampleFlag, weekFlag, asOfFlag, jsonFlag},
				Action:    withRunner(importAction),
			},
			eventCommand(),
			{
				Name:      "score",
				Usage:     "Explain the cost of an event term by term",
				UsageText: "cogload score ID",
				Flags:     []cli.Flag{jsonFlag},
				Action:    withRunner(scoreAction),
			},
			{
				Name:   "budget",
				Usage:  "Show today's and this week's budget",
				Flags:  []cli.Flag{asOfFlag, jsonFlag},
				Action: withRunner(budgetAction),
			},
			{
				Name:   "optimize",
				Usage:  "Propose moving flexible events to reduce debt",
				Flags:  []cli.Flag{weekFlag, asOfFlag, jsonFlag},
				Action: withRunner(optimizeAction),
			},
			{
				Name:      "apply",
				Usage:     "Apply a stored proposal",
				UsageText: "cogload apply PROPOSAL_ID [--only ID,...]",
				Flags:     []cli.Flag{onlyFlag, jsonFlag},
				Action:    withRunner(applyAction),
			},
			{
				Name:   "recover",
				Usage:  "Suggest recovery activities for free slots",
				Flags:  []cli.Flag{asOfFlag, jsonFlag},
				Action: withRunner(recoverAction),
			},
			sessionCommand(),
			{
				Name:   "baseline",
				Usage:  "Show or reset your personal vitals baseline",
				Flags:  []cli.Flag{resetFlag, jsonFlag},
				Action: withRunner(baselineAction),
			},
			{
				Name:   "watch",
				Usage:  "Notify when the daily budget is overdrawn",
				Action: watchAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			userFlag,
			budgetFlag,
			workStartFlag,
			workEndFlag,
			aggregationFlag,
			sessionCmdFlag,
			disableNotificationFlag,
			noColorFlag,
			debugFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}

	return cogloadApp
}
