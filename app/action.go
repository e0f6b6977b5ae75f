package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/cogload/internal/config"
	"github.com/ayoisaiah/cogload/internal/logger"
	"github.com/ayoisaiah/cogload/internal/models"
	"github.com/ayoisaiah/cogload/internal/pathutil"
	"github.com/ayoisaiah/cogload/internal/static"
	"github.com/ayoisaiah/cogload/internal/ui"
	"github.com/ayoisaiah/cogload/report"
	"github.com/ayoisaiah/cogload/store"
)

const (
	envNoColor        = "NO_COLOR"
	envCogloadNoColor = "COGLOAD_NO_COLOR"
)

var logCloser io.Closer

// confirm asks a yes/no question on the terminal.
var confirm = func(title string) (bool, error) {
	var ok bool

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()

	return ok, err
}

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) ||
		isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// loadConfig builds the configuration from the config file and the flags
// visible from ctx. The first-run prompt is only shown on a terminal.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	var opts []config.Option

	if interactive() {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(
		opts,
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

// withRunner loads the config and opens the store around an action.
func withRunner(fn func(*cli.Context, *runner) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		db, err := store.NewClient(pathutil.DBFilePath())
		if err != nil {
			return err
		}

		defer db.Close()

		return fn(ctx, newRunner(cfg, db, config.Stdout))
	}
}

// confirmCollisions prints the events that e would overlap and asks
// whether to go ahead. --yes answers for the user.
func (r *runner) confirmCollisions(
	ctx *cli.Context,
	e *models.Event,
	others []models.Event,
) (bool, error) {
	if len(others) == 0 {
		return true, nil
	}

	report.Collisions(r.out, e, others, r.cfg.Clock())

	if ctx.Bool("yes") {
		return true, nil
	}

	if !interactive() {
		return false, errNeedsConfirmation
	}

	return confirm("Save it anyway?")
}

// editConfigAction handles the edit-config command which opens the cogload
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/cogload/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envCogloadNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	logCloser = logger.Setup(pathutil.LogFilePath(), ctx.Bool("debug"))

	return static.Install(pathutil.DataDir())
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting cogload")

	if logCloser != nil {
		return logCloser.Close()
	}

	return nil
}
