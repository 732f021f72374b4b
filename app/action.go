package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tempo-sh/tempo/client"
	"github.com/tempo-sh/tempo/config"
	"github.com/tempo-sh/tempo/internal/ipc"
	"github.com/tempo-sh/tempo/server"
	"github.com/tempo-sh/tempo/timer"
)

const (
	envNoColor      = "NO_COLOR"
	envTempoNoColor = "TEMPO_NO_COLOR"

	// spawnWait bounds how long the attach flow waits for a freshly spawned
	// daemon to open its socket.
	spawnWait = 5 * time.Second
)

var (
	errNotRunning = errors.New(
		"tempo is not running. Start it with: tempo",
	)

	errSpawnTimeout = errors.New(
		"the tempo daemon did not come up in time; check the log file",
	)
)

// commandKinds maps control subcommands to the wire message they send.
var commandKinds = map[string]ipc.ClientMsgKind{
	"toggle":   ipc.KindPlayPause,
	"skip":     ipc.KindSkip,
	"postpone": ipc.KindPostpone,
	"reset":    ipc.KindReset,
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

// serveAction runs the daemon in the foreground until it is told to quit or
// receives an interrupt.
func serveAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	sigCtx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	srv := server.New(cfg, newLogger(cfg))

	return srv.Start(sigCtx)
}

// ensureServer makes sure a daemon is reachable, spawning a detached one if
// necessary.
func ensureServer(cfg *config.Config) error {
	if server.Probe(cfg.System.SocketPath, cfg.System.PIDPath) == server.StatusRunning {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, "serve")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to start the tempo daemon: %w", err)
	}

	// the daemon outlives this process
	if err := cmd.Process.Release(); err != nil {
		return err
	}

	deadline := time.Now().Add(spawnWait)

	for time.Now().Before(deadline) {
		if c, err := client.Dial(cfg.System.SocketPath); err == nil {
			return c.Close()
		}

		time.Sleep(50 * time.Millisecond)
	}

	return errSpawnTimeout
}

// defaultAction starts the daemon if necessary and attaches the terminal UI
// to it.
func defaultAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	if err := ensureServer(cfg); err != nil {
		return err
	}

	return client.Attach(cfg, newLogger(cfg))
}

// actionFor returns the cli action for a one-shot control subcommand.
func actionFor(name string) cli.ActionFunc {
	kind := commandKinds[name]

	return func(ctx *cli.Context) error {
		cfg := config.Get(ctx)

		if server.Probe(cfg.System.SocketPath, cfg.System.PIDPath) != server.StatusRunning {
			return errNotRunning
		}

		return client.SendAction(cfg.System.SocketPath, kind)
	}
}

// stopAction shuts a running daemon down.
func stopAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	if server.Probe(cfg.System.SocketPath, cfg.System.PIDPath) != server.StatusRunning {
		pterm.Info.Println("tempo is not running")

		return nil
	}

	if err := client.SendAction(cfg.System.SocketPath, ipc.KindQuit); err != nil {
		return err
	}

	pterm.Success.Println("tempo stopped")

	return nil
}

// statusAction prints a one-line summary of the running timer.
func statusAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	if server.Probe(cfg.System.SocketPath, cfg.System.PIDPath) != server.StatusRunning {
		pterm.Println("tempo is not running")

		return nil
	}

	view, err := client.Status(cfg.System.SocketPath)
	if err != nil {
		return err
	}

	pterm.Println(formatStatus(view))

	return nil
}

func formatStatus(view timer.ViewState) string {
	label := "Work"

	switch view.Kind {
	case timer.KindShortBreak:
		label = "Short break"
	case timer.KindLongBreak:
		label = "Long break"
	case timer.KindPostponedLongBreak:
		label = fmt.Sprintf("Postponed x%d", view.PostponeCount)
	}

	s := fmt.Sprintf("[%s] %s (round %d)", label, view.Remaining, view.Round)

	if view.IsPaused {
		s += " [paused]"
	}

	return s
}

// editConfigAction opens the tempo config file in the user's text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.Get(ctx)

	cmd := exec.Command(editor, cfg.System.ConfigPath)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envTempoNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
