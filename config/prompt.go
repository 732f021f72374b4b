package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

const ascii = `
████████╗███████╗███╗   ███╗██████╗  ██████╗
╚══██╔══╝██╔════╝████╗ ████║██╔══██╗██╔═══██╗
   ██║   █████╗  ██╔████╔██║██████╔╝██║   ██║
   ██║   ██╔══╝  ██║╚██╔╝██║██╔═══╝ ██║   ██║
   ██║   ███████╗██║ ╚═╝ ██║██║     ╚██████╔╝
   ╚═╝   ╚══════╝╚═╝     ╚═╝╚═╝      ╚═════╝ `

// firstRunPrompt lets the user state their preferred values for the most
// important timer settings. It runs only when a configuration file is not
// already present, and only on an interactive terminal.
func firstRunPrompt(v *viper.Viper) error {
	if os.Getenv("TEMPO_ENV") == "testing" {
		return nil
	}

	if fi, err := os.Stdin.Stat(); err != nil ||
		fi.Mode()&os.ModeCharDevice == 0 {
		return nil
	}

	pterm.Printfln("%s\n", ascii)
	pterm.Info.Printfln(
		"Your preferences will be saved to: %s\n",
		configFilePath,
	)

	work := v.GetString(keyWorkDuration)
	shortBreak := v.GetString(keyShortBreakDuration)
	longBreak := v.GetString(keyLongBreakDuration)
	interval := strconv.FormatUint(uint64(v.GetUint(keyLongBreakInterval)), 10)

	validDuration := func(s string) error {
		_, err := parseDuration(s)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Work length").
				Description("e.g. 25m or 1h").
				Validate(validDuration).
				Value(&work),
			huh.NewInput().
				Title("Short break length").
				Validate(validDuration).
				Value(&shortBreak),
			huh.NewInput().
				Title("Long break length").
				Validate(validDuration).
				Value(&longBreak),
			huh.NewInput().
				Title("Work sessions before a long break").
				Validate(func(s string) error {
					if _, err := strconv.ParseUint(s, 10, 32); err != nil {
						return errReadingInput
					}
					return nil
				}).
				Value(&interval),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	n, err := strconv.ParseUint(interval, 10, 32)
	if err != nil {
		return errReadingInput
	}

	v.Set(keyWorkDuration, work)
	v.Set(keyShortBreakDuration, shortBreak)
	v.Set(keyLongBreakDuration, longBreak)
	v.Set(keyLongBreakInterval, uint(n))

	pterm.Success.Printfln("Your settings have been saved. Thanks for using tempo!")

	return nil
}
