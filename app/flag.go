package app

import "github.com/urfave/cli/v2"

var (
	workFlag = &cli.StringFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Work interval duration in minutes (default: 25)",
	}

	shortBreakFlag = &cli.StringFlag{
		Name:    "short-break",
		Aliases: []string{"s"},
		Usage:   "Short break duration in minutes (default: 5)",
	}

	longBreakFlag = &cli.StringFlag{
		Name:    "long-break",
		Aliases: []string{"l"},
		Usage:   "Long break duration in minutes (default: 15)",
	}

	postponeFlag = &cli.StringFlag{
		Name:  "postpone",
		Usage: "Extra work stretch gained by postponing a long break, in minutes (default: 5)",
	}

	longBreakIntervalFlag = &cli.UintFlag{
		Name:    "long-break-interval",
		Aliases: []string{"int"},
		Usage:   "The number of work intervals before a long break (default: 4)",
	}

	postponeLimitFlag = &cli.UintFlag{
		Name:  "postpone-limit",
		Usage: "How many times in a row a long break may be postponed (default: 3)",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a phase ends",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Path to the bell played when a phase ends (mp3, ogg, flac, or wav). Set to 'off' to silence it",
	}

	volumeFlag = &cli.Float64Flag{
		Name:  "volume",
		Usage: "Bell volume between 0.0 and 1.0",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command whenever a phase ends",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}
)
