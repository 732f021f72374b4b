// Package ipc defines the wire protocol spoken between the tempo server and
// its attached clients: two closed message enumerations, framed as
// length-prefixed JSON over a local byte stream.
package ipc

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tempo-sh/tempo/timer"
)

// MaxFrameSize caps a single message payload. Frames above it indicate a
// corrupt or hostile stream and terminate the connection.
const MaxFrameSize = 64 << 10

var (
	errEmptyFrame    = errors.New("ipc: empty frame")
	errFrameTooLarge = fmt.Errorf("ipc: frame exceeds %d bytes", MaxFrameSize)
)

// ClientMsgKind enumerates the intents a client may send.
type ClientMsgKind string

const (
	// KindQuit shuts the whole server process down.
	KindQuit ClientMsgKind = "quit"
	// KindReset hard-resets the timer to a fresh interval.
	KindReset ClientMsgKind = "reset"
	// KindPlayPause toggles the countdown.
	KindPlayPause ClientMsgKind = "play_pause"
	// KindSkip ends the active phase immediately.
	KindSkip ClientMsgKind = "skip"
	// KindPostpone defers the active long break.
	KindPostpone ClientMsgKind = "postpone"
	// KindDetach closes only the issuing connection.
	KindDetach ClientMsgKind = "detach"
	// KindSync is a no-op acknowledgement; the client already receives the
	// broadcast stream.
	KindSync ClientMsgKind = "sync"
)

// ServerMsgKind enumerates outbound payload kinds. Currently a singleton.
type ServerMsgKind string

// KindTimer carries a timer snapshot.
const KindTimer ServerMsgKind = "timer"

// ClientMsg is a message from an attached client to the server.
type ClientMsg struct {
	Kind ClientMsgKind `json:"kind"`
}

// ServerMsg is a message from the server to an attached client.
type ServerMsg struct {
	Kind  ServerMsgKind    `json:"kind"`
	Timer *timer.ViewState `json:"timer,omitempty"`
}

// Action maps a client message to the timer control action it requests.
// Lifecycle intents (quit, detach, sync) carry no action.
func (k ClientMsgKind) Action() (timer.Action, bool) {
	switch k {
	case KindReset:
		return timer.ActionReset, true
	case KindPlayPause:
		return timer.ActionPlayPause, true
	case KindSkip:
		return timer.ActionSkip, true
	case KindPostpone:
		return timer.ActionPostponeBreak, true
	default:
		return timer.ActionNone, false
	}
}

// Validate rejects kinds outside the closed enumeration.
func (m ClientMsg) Validate() error {
	switch m.Kind {
	case KindQuit, KindReset, KindPlayPause, KindSkip, KindPostpone,
		KindDetach, KindSync:
		return nil
	default:
		return fmt.Errorf("ipc: unknown client message kind %q", m.Kind)
	}
}

// Write frames v as length-prefixed JSON and writes it to w in one call.
func Write(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ipc: encoding message: %w", err)
	}

	if len(payload) > MaxFrameSize {
		return errFrameTooLarge
	}

	frame := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)

	_, err = w.Write(frame)

	return err
}

// Read reads one length-prefixed JSON frame from r into v. It returns
// io.EOF unchanged when the stream ends cleanly between frames.
func Read(r io.Reader, v any) error {
	var header [4]byte

	if _, err := io.ReadFull(r, header[:]); err != nil {
		return err
	}

	size := binary.BigEndian.Uint32(header[:])

	if size == 0 {
		return errEmptyFrame
	}

	if size > MaxFrameSize {
		return errFrameTooLarge
	}

	payload := make([]byte, size)

	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("ipc: short frame: %w", err)
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("ipc: decoding message: %w", err)
	}

	return nil
}

// ReadClientMsg reads and validates one inbound client message.
func ReadClientMsg(r io.Reader) (ClientMsg, error) {
	var msg ClientMsg

	if err := Read(r, &msg); err != nil {
		return ClientMsg{}, err
	}

	if err := msg.Validate(); err != nil {
		return ClientMsg{}, err
	}

	return msg, nil
}
