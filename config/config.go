// Package config is responsible for setting the program config from the
// config file and command-line arguments, and for resolving the well-known
// paths the daemon and its clients share.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tempo-sh/tempo/timer"
)

const Version = "v0.3.1"

type (
	// Config holds all configuration settings.
	Config struct {
		Sessions     SessionConfig
		Notification NotificationConfig
		Display      DisplayConfig
		System       SystemConfig
	}

	// SessionConfig holds the timer cadence settings.
	SessionConfig struct {
		Interval          time.Duration
		ShortBreak        time.Duration
		LongBreak         time.Duration
		Postpone          time.Duration
		LongBreakInterval uint
		PostponeLimit     uint
		ActionPoll        time.Duration
		Cmd               string
	}

	// NotificationConfig holds phase-end notification settings.
	NotificationConfig struct {
		Enabled      bool
		Bell         bool
		Sound        string
		Volume       float64
		WorkMessage  string
		BreakMessage string
	}

	// DisplayConfig holds client rendering settings.
	DisplayConfig struct {
		WorkColor       string
		ShortBreakColor string
		LongBreakColor  string
		PostponeColor   string
		DarkTheme       bool
	}

	// SystemConfig holds resolved filesystem paths.
	SystemConfig struct {
		ConfigPath string
		SocketPath string
		PIDPath    string
		LogPath    string
	}

	// Option is a function that modifies a Config.
	Option func(*Config) error
)

var (
	appDir         = "tempo"
	configFileName = "config.yml"
	socketFileName = "tempo.sock"
	pidFileName    = "tempo.pid"
	logFileName    = "tempo.log"

	configFilePath string
	socketFilePath string
	pidFilePath    string
	logFilePath    string
)

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Dir returns the application directory name used under the XDG base dirs.
func Dir() string {
	return appDir
}

func ConfigFilePath() string {
	return configFilePath
}

func SocketFilePath() string {
	return socketFilePath
}

func PIDFilePath() string {
	return pidFilePath
}

func LogFilePath() string {
	return logFilePath
}

// InitializePaths resolves the config, socket, PID, and log file locations.
// Setting TEMPO_ENV suffixes the file names so that development or test
// instances never collide with a real one.
func InitializePaths() {
	tempoEnv := strings.TrimSpace(os.Getenv("TEMPO_ENV"))
	if tempoEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", tempoEnv)
		socketFileName = fmt.Sprintf("tempo_%s.sock", tempoEnv)
		pidFileName = fmt.Sprintf("tempo_%s.pid", tempoEnv)
		logFileName = fmt.Sprintf("tempo_%s.log", tempoEnv)
	}

	var err error

	configFilePath, err = xdg.ConfigFile(filepath.Join(appDir, configFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(appDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logFilePath = filepath.Join(dataDir, "log", logFileName)

	runDir := xdg.RuntimeDir
	if runDir == "" {
		runDir = os.TempDir()
	}

	runDir = filepath.Join(runDir, appDir)

	if err = os.MkdirAll(runDir, 0o700); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	socketFilePath = filepath.Join(runDir, socketFileName)
	pidFilePath = filepath.Join(runDir, pidFileName)
}

// SetRuntimePaths overrides the socket and PID file locations. It exists for
// tests that confine a server instance to a temporary directory.
func SetRuntimePaths(socket, pid string) {
	socketFilePath = socket
	pidFilePath = pid
}

// New creates a Config with default values and applies options in order.
func New(opts ...Option) (*Config, error) {
	c := defaultConfig()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	c.System = SystemConfig{
		ConfigPath: configFilePath,
		SocketPath: socketFilePath,
		PIDPath:    pidFilePath,
		LogPath:    logFilePath,
	}

	return c, nil
}

// Get initializes and returns the program configuration. The
// initialization happens once no matter how many times it is called.
func Get(ctx *cli.Context) *Config {
	cfgOnce.Do(func() {
		InitializePaths()

		c, err := New(
			WithViperConfig(configFilePath),
			withCliOverrides(ctx),
		)
		if err != nil {
			pterm.Error.Printfln("unable to initialise tempo settings: %v", err)
			os.Exit(1)
		}

		cfg = c
	})

	return cfg
}

// TimerConfig derives the state machine settings from the loaded config.
func (c *Config) TimerConfig() timer.Config {
	return timer.Config{
		Interval:          c.Sessions.Interval,
		ShortBreak:        c.Sessions.ShortBreak,
		LongBreak:         c.Sessions.LongBreak,
		Postpone:          c.Sessions.Postpone,
		LongBreakInterval: c.Sessions.LongBreakInterval,
		PostponeLimit:     c.Sessions.PostponeLimit,
	}
}

func defaultConfig() *Config {
	return &Config{
		Sessions: SessionConfig{
			Interval:          25 * time.Minute,
			ShortBreak:        5 * time.Minute,
			LongBreak:         15 * time.Minute,
			Postpone:          5 * time.Minute,
			LongBreakInterval: 4,
			PostponeLimit:     3,
			ActionPoll:        100 * time.Millisecond,
		},
		Notification: NotificationConfig{
			Enabled:      true,
			Bell:         true,
			Volume:       1.0,
			WorkMessage:  "Focus on your task",
			BreakMessage: "Take a breather",
		},
		Display: DisplayConfig{
			WorkColor:       "#B0DB43",
			ShortBreakColor: "#12EAEA",
			LongBreakColor:  "#C492B1",
			PostponeColor:   "#F2A359",
			DarkTheme:       true,
		},
	}
}

func (c *Config) validate() error {
	if c.Sessions.Interval <= 0 || c.Sessions.ShortBreak <= 0 ||
		c.Sessions.LongBreak <= 0 || c.Sessions.Postpone <= 0 {
		return errInvalidDuration
	}

	if c.Sessions.ActionPoll <= 0 || c.Sessions.ActionPoll >= time.Second {
		return errInvalidActionPoll
	}

	return nil
}

// withCliOverrides applies command-line arguments on top of the file
// configuration.
func withCliOverrides(ctx *cli.Context) Option {
	return func(c *Config) error {
		if ctx == nil {
			return nil
		}

		for flag, dst := range map[string]*time.Duration{
			"work":        &c.Sessions.Interval,
			"short-break": &c.Sessions.ShortBreak,
			"long-break":  &c.Sessions.LongBreak,
			"postpone":    &c.Sessions.Postpone,
		} {
			if v := ctx.String(flag); v != "" {
				d, err := parseDuration(v)
				if err != nil {
					return err
				}

				*dst = d
			}
		}

		if v := ctx.Uint("long-break-interval"); v > 0 {
			c.Sessions.LongBreakInterval = v
		}

		if ctx.IsSet("postpone-limit") {
			c.Sessions.PostponeLimit = ctx.Uint("postpone-limit")
		}

		if ctx.Bool("disable-notification") {
			c.Notification.Enabled = false
		}

		if v := ctx.String("sound"); v != "" {
			if v == "off" {
				c.Notification.Bell = false
				c.Notification.Sound = ""
			} else {
				c.Notification.Sound = v
			}
		}

		if ctx.IsSet("volume") {
			c.Notification.Volume = ctx.Float64("volume")
		}

		if v := ctx.String("session-cmd"); v != "" {
			c.Sessions.Cmd = v
		}

		return nil
	}
}
