package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/tempo-sh/tempo/config"
	"github.com/tempo-sh/tempo/internal/ipc"
	"github.com/tempo-sh/tempo/timer"
)

type (
	// snapshotMsg carries a timer snapshot pushed by the server.
	snapshotMsg timer.ViewState

	// connLostMsg is delivered when the server connection drops.
	connLostMsg struct {
		err error
	}
)

// Model renders the live timer state pushed by the server and translates key
// presses into control messages.
type Model struct {
	cfg    *config.Config
	log    zerolog.Logger
	client *Client
	style  styles
	help   help.Model
	view   timer.ViewState
	synced bool
	err    error
}

// Attach connects to the server socket, starts the snapshot reader, and runs
// the terminal UI until the user detaches or the connection drops.
func Attach(cfg *config.Config, log zerolog.Logger) error {
	c, err := Dial(cfg.System.SocketPath)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	m := &Model{
		cfg:    cfg,
		log:    log,
		client: c,
		style:  newStyles(cfg),
		help:   help.New(),
	}

	p := tea.NewProgram(m)

	go func() {
		for {
			msg, err := c.Recv()
			if err != nil {
				p.Send(connLostMsg{err: err})

				return
			}

			if msg.Kind == ipc.KindTimer && msg.Timer != nil {
				p.Send(snapshotMsg(*msg.Timer))
			}
		}
	}()

	out, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := out.(*Model); ok && fm.err != nil {
		return fm.err
	}

	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e := m.log.Trace(); e.Enabled() {
		e.Msg(spew.Sdump(msg))
	}

	switch msg := msg.(type) {
	case snapshotMsg:
		m.view = timer.ViewState(msg)
		m.synced = true

		return m, nil

	case connLostMsg:
		m.err = fmt.Errorf("lost connection to tempo server: %w", msg.err)

		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.togglePlay):
		m.send(ipc.KindPlayPause)

	case key.Matches(msg, defaultKeymap.skip):
		m.send(ipc.KindSkip)

	case key.Matches(msg, defaultKeymap.postpone):
		m.send(ipc.KindPostpone)

	case key.Matches(msg, defaultKeymap.reset):
		m.send(ipc.KindReset)

	case key.Matches(msg, defaultKeymap.detach):
		m.send(ipc.KindDetach)

		return m, tea.Batch(tea.ClearScreen, tea.Quit)

	case key.Matches(msg, defaultKeymap.quit):
		m.send(ipc.KindQuit)

		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return m, nil
}

// send delivers a control message without blocking the UI loop. A write
// failure surfaces on the next read as a connection loss.
func (m *Model) send(kind ipc.ClientMsgKind) {
	if err := m.client.Send(kind); err != nil {
		m.log.Debug().Err(err).Str("kind", string(kind)).
			Msg("failed to send control message")
	}
}

func (m *Model) phaseLabel() (string, lipgloss.Style) {
	switch m.view.Kind {
	case timer.KindShortBreak:
		return "Short break", m.style.shortRec
	case timer.KindLongBreak:
		return "Long break", m.style.longRec
	case timer.KindPostponedLongBreak:
		return "Postponed", m.style.postpone
	default:
		return "Work", m.style.work
	}
}

func (m *Model) View() string {
	if !m.synced {
		return m.style.base.Render(
			m.style.hint.Render("connecting to tempo server..."),
		)
	}

	var s strings.Builder

	label, style := m.phaseLabel()

	s.WriteString(style.Render(label))

	if m.view.Kind == timer.KindInterval ||
		m.view.Kind == timer.KindPostponedLongBreak {
		s.WriteString(m.style.hint.Render(
			fmt.Sprintf(" (round %d)", m.view.Round),
		))
	}

	if m.view.IsPostponed {
		s.WriteString(m.style.hint.Render(
			fmt.Sprintf(" [deferred x%d]", m.view.PostponeCount),
		))
	}

	if m.view.IsPaused {
		s.WriteString(m.style.hint.Render(" [paused]"))
	}

	s.WriteString("\n\n")
	s.WriteString(m.style.clock.Render(m.view.Remaining))
	s.WriteString("\n\n")
	s.WriteString(m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.skip,
		defaultKeymap.postpone,
		defaultKeymap.reset,
		defaultKeymap.detach,
		defaultKeymap.quit,
	}))

	return m.style.base.Render(s.String())
}
