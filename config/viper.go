package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyWorkDuration       = "work.duration"
	keyWorkColor          = "work.color"
	keyShortBreakDuration = "short_break.duration"
	keyShortBreakColor    = "short_break.color"
	keyLongBreakDuration  = "long_break.duration"
	keyLongBreakColor     = "long_break.color"
	keyPostponeDuration   = "postpone.duration"
	keyPostponeColor      = "postpone.color"
	keyLongBreakInterval  = "settings.long_break_interval"
	keyPostponeLimit      = "settings.postpone_limit"
	keyActionPoll         = "settings.action_poll"
	keySessionCmd         = "settings.cmd"
	keyNotifyEnabled      = "notifications.enabled"
	keyNotifyBell         = "notifications.bell"
	keyNotifySound        = "notifications.sound"
	keyNotifyVolume       = "notifications.volume"
	keyNotifyWorkMsg      = "notifications.work_message"
	keyNotifyBreakMsg     = "notifications.break_message"
	keyDarkTheme          = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A missing file triggers the first-run prompt and the
// resulting settings are written back as the new config file.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if promptErr := firstRunPrompt(v); promptErr != nil {
			return promptErr
		}

		if err := v.WriteConfigAs(configPath); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

func setViperDefaults(v *viper.Viper, c *Config) {
	v.SetDefault(keyWorkDuration, c.Sessions.Interval.String())
	v.SetDefault(keyWorkColor, c.Display.WorkColor)
	v.SetDefault(keyShortBreakDuration, c.Sessions.ShortBreak.String())
	v.SetDefault(keyShortBreakColor, c.Display.ShortBreakColor)
	v.SetDefault(keyLongBreakDuration, c.Sessions.LongBreak.String())
	v.SetDefault(keyLongBreakColor, c.Display.LongBreakColor)
	v.SetDefault(keyPostponeDuration, c.Sessions.Postpone.String())
	v.SetDefault(keyPostponeColor, c.Display.PostponeColor)
	v.SetDefault(keyLongBreakInterval, c.Sessions.LongBreakInterval)
	v.SetDefault(keyPostponeLimit, c.Sessions.PostponeLimit)
	v.SetDefault(keyActionPoll, c.Sessions.ActionPoll.String())
	v.SetDefault(keySessionCmd, c.Sessions.Cmd)
	v.SetDefault(keyNotifyEnabled, c.Notification.Enabled)
	v.SetDefault(keyNotifyBell, c.Notification.Bell)
	v.SetDefault(keyNotifySound, c.Notification.Sound)
	v.SetDefault(keyNotifyVolume, c.Notification.Volume)
	v.SetDefault(keyNotifyWorkMsg, c.Notification.WorkMessage)
	v.SetDefault(keyNotifyBreakMsg, c.Notification.BreakMessage)
	v.SetDefault(keyDarkTheme, c.Display.DarkTheme)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	durations := map[string]*time.Duration{
		keyWorkDuration:       &c.Sessions.Interval,
		keyShortBreakDuration: &c.Sessions.ShortBreak,
		keyLongBreakDuration:  &c.Sessions.LongBreak,
		keyPostponeDuration:   &c.Sessions.Postpone,
		keyActionPoll:         &c.Sessions.ActionPoll,
	}

	for key, dst := range durations {
		d, err := parseDuration(v.GetString(key))
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %w", key, err)
		}

		*dst = d
	}

	c.Sessions.LongBreakInterval = v.GetUint(keyLongBreakInterval)
	c.Sessions.PostponeLimit = v.GetUint(keyPostponeLimit)
	c.Sessions.Cmd = v.GetString(keySessionCmd)

	c.Notification.Enabled = v.GetBool(keyNotifyEnabled)
	c.Notification.Bell = v.GetBool(keyNotifyBell)
	c.Notification.Sound = v.GetString(keyNotifySound)
	c.Notification.Volume = v.GetFloat64(keyNotifyVolume)
	c.Notification.WorkMessage = v.GetString(keyNotifyWorkMsg)
	c.Notification.BreakMessage = v.GetString(keyNotifyBreakMsg)

	c.Display.WorkColor = v.GetString(keyWorkColor)
	c.Display.ShortBreakColor = v.GetString(keyShortBreakColor)
	c.Display.LongBreakColor = v.GetString(keyLongBreakColor)
	c.Display.PostponeColor = v.GetString(keyPostponeColor)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)

	return nil
}

// parseDuration accepts ordinary duration strings and falls back to treating
// a bare number as minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
