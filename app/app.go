// Package app assembles the tempo command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tempo-sh/tempo/config"
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

// Get retrieves the tempo app instance.
func Get() *cli.App {
	tempoApp := &cli.App{
		Name: "tempo",
		Usage: `
		Tempo is a pomodoro timer that runs as a background daemon so the
		countdown survives closing the terminal. Running tempo without a
		command starts the daemon if necessary and attaches to it.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the timer daemon in the foreground",
				Action: serveAction,
			},
			{
				Name:   "stop",
				Usage:  "Shut the timer daemon down",
				Action: stopAction,
			},
			{
				Name:   "toggle",
				Usage:  "Pause or resume the countdown",
				Action: actionFor("toggle"),
			},
			{
				Name:   "skip",
				Usage:  "End the current phase immediately",
				Action: actionFor("skip"),
			},
			{
				Name:   "postpone",
				Usage:  "Defer the active long break and keep working",
				Action: actionFor("postpone"),
			},
			{
				Name:   "reset",
				Usage:  "Restart the cycle from a fresh work interval",
				Action: actionFor("reset"),
			},
			{
				Name:   "status",
				Usage:  "Print the state of the running timer",
				Action: statusAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			workFlag,
			shortBreakFlag,
			longBreakFlag,
			postponeFlag,
			longBreakIntervalFlag,
			postponeLimitFlag,
			disableNotificationFlag,
			soundFlag,
			volumeFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return tempoApp
}
