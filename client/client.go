// Package client connects to a running tempo server over its unix socket,
// either for one-shot control messages or for an attached terminal UI.
package client

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/tempo-sh/tempo/internal/ipc"
	"github.com/tempo-sh/tempo/timer"
)

// statusTimeout bounds how long a one-shot status query waits for the next
// snapshot broadcast. The server publishes at least once per second, so this
// only trips when the server is wedged.
const statusTimeout = 3 * time.Second

var errNoSnapshot = errors.New("no timer snapshot received from server")

// Client is a single connection to the tempo server.
type Client struct {
	conn net.Conn
}

// Dial connects to the server socket at the given path.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to tempo server: %w", err)
	}

	return &Client{conn: conn}, nil
}

// Send writes one control message to the server.
func (c *Client) Send(kind ipc.ClientMsgKind) error {
	return ipc.Write(c.conn, ipc.ClientMsg{Kind: kind})
}

// Recv blocks until the server pushes its next message.
func (c *Client) Recv() (ipc.ServerMsg, error) {
	var msg ipc.ServerMsg

	if err := ipc.Read(c.conn, &msg); err != nil {
		return ipc.ServerMsg{}, err
	}

	return msg, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// SendAction performs a one-shot control exchange: connect, deliver the
// message, and detach.
func SendAction(socketPath string, kind ipc.ClientMsgKind) error {
	c, err := Dial(socketPath)
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	if err := c.Send(kind); err != nil {
		return err
	}

	if kind == ipc.KindQuit {
		return nil
	}

	return c.Send(ipc.KindDetach)
}

// Status connects, waits for the next timer snapshot, and detaches.
func Status(socketPath string) (timer.ViewState, error) {
	c, err := Dial(socketPath)
	if err != nil {
		return timer.ViewState{}, err
	}

	defer func() {
		_ = c.Close()
	}()

	if err := c.Send(ipc.KindSync); err != nil {
		return timer.ViewState{}, err
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(statusTimeout)); err != nil {
		return timer.ViewState{}, err
	}

	for {
		msg, err := c.Recv()
		if err != nil {
			return timer.ViewState{}, fmt.Errorf(
				"%w: %w", errNoSnapshot, err,
			)
		}

		if msg.Kind == ipc.KindTimer && msg.Timer != nil {
			_ = c.Send(ipc.KindDetach)

			return *msg.Timer, nil
		}
	}
}
