package server

import (
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/tempo-sh/tempo/config"
	"github.com/tempo-sh/tempo/timer"
)

// notifier dispatches the configured side effects when a phase ends:
// desktop notification, bell sound, and the optional session command.
// Every failure here is logged and absorbed; nothing reaches the timer.
type notifier struct {
	cfg *config.Config
	log zerolog.Logger
}

// PhaseEnd is wired as the state machine's phase-end hook. The actual work
// runs off the tick goroutine so audio playback never delays a tick.
func (n *notifier) PhaseEnd(r timer.RoundState, kind timer.Kind, isInterval bool) {
	n.log.Info().
		Str("phase", string(kind)).
		Uint("round", r.Round).
		Uint("postponed", r.Postponed).
		Msg("phase ended")

	go n.dispatch(isInterval)
}

func (n *notifier) dispatch(isInterval bool) {
	if n.cfg.Notification.Enabled {
		title := "Break is over"
		body := n.cfg.Notification.WorkMessage

		if isInterval {
			title = "Work session is finished"
			body = n.cfg.Notification.BreakMessage
		}

		if err := beeep.Notify(title, body, ""); err != nil {
			n.log.Error().Err(err).Msg("unable to display notification")
		}
	}

	if n.cfg.Notification.Bell {
		if err := n.playBell(); err != nil {
			n.log.Error().Err(err).Msg("unable to play notification sound")
		}
	}

	if err := n.runSessionCmd(); err != nil {
		n.log.Error().Err(err).Msg("session command failed")
	}
}

// runSessionCmd executes the configured phase-end command, if any.
func (n *notifier) runSessionCmd() error {
	sessionCmd := n.cfg.Sessions.Cmd
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return err
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	return exec.Command(cmdSlice[0], cmdSlice[1:]...).Run()
}
