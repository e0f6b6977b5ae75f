package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	WorkStart   int
	WorkEnd     int
	DailyBudget float64
}

// WithPromptConfig returns an Option that asks for the basic settings
// when no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromString("COGLOAD"),
	).Render()

	_ = putils.BulletListFromString(`Follow the prompts below to configure cogload for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'cogload edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("When does your work day start?").
				Options(
					huh.NewOption("7:00", 7),
					huh.NewOption("8:00", 8),
					huh.NewOption("9:00", 9).Selected(true),
					huh.NewOption("10:00", 10),
				).
				Value(&opts.WorkStart),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("When does it end?").
				Options(
					huh.NewOption("15:00", 15),
					huh.NewOption("16:00", 16),
					huh.NewOption("17:00", 17).Selected(true),
					huh.NewOption("18:00", 18),
					huh.NewOption("19:00", 19),
				).
				Value(&opts.WorkEnd),
		),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Daily cognitive budget (points)").
				Description("A one hour meeting with a few people costs about 10.").
				Options(
					huh.NewOption("15 (light)", 15.0),
					huh.NewOption("20 (default)", 20.0).Selected(true),
					huh.NewOption("30 (heavy)", 30.0),
				).
				Value(&opts.DailyBudget),
		),
	)

	if err := form.Run(); err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Schedule.WorkStart = opts.WorkStart
	c.Schedule.WorkEnd = opts.WorkEnd
	c.Budget.Daily = opts.DailyBudget

	return nil
}
