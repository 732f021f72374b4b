// Package server runs the authoritative tempo timer and exposes it to
// attached clients over a local unix socket.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tempo-sh/tempo/config"
	"github.com/tempo-sh/tempo/internal/ipc"
	"github.com/tempo-sh/tempo/timer"
)

// Server owns the single timer instance of this process, the unix socket it
// is published on, and one handler goroutine per attached client. It holds
// no shared mutable state beyond the two channel endpoints connecting the
// tick goroutine to the connection handlers.
type Server struct {
	cfg      *config.Config
	log      zerolog.Logger
	driver   *timer.Driver
	notifier *notifier
	ln       net.Listener

	// exit terminates the process after a Quit request. Swapped out in
	// tests so a Quit can be observed instead of killing the test binary.
	exit func(code int)

	driverOpts []timer.DriverOption
}

// Option configures a Server.
type Option func(*Server)

// WithExitFunc replaces os.Exit for Quit handling.
func WithExitFunc(fn func(int)) Option {
	return func(s *Server) {
		s.exit = fn
	}
}

// WithDriverOptions forwards options to the tick driver.
func WithDriverOptions(opts ...timer.DriverOption) Option {
	return func(s *Server) {
		s.driverOpts = append(s.driverOpts, opts...)
	}
}

// New creates a server for the given configuration.
func New(cfg *config.Config, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:  cfg,
		log:  log,
		exit: os.Exit,
	}

	s.notifier = &notifier{cfg: cfg, log: log}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start binds the endpoint and serves connections until ctx is cancelled or
// a client requests shutdown. Starting is idempotent: when a live server
// already owns the endpoint, Start logs and returns nil without side
// effects.
func (s *Server) Start(ctx context.Context) error {
	socketPath := s.cfg.System.SocketPath
	pidPath := s.cfg.System.PIDPath

	switch Probe(socketPath, pidPath) {
	case StatusRunning:
		s.log.Info().Msg("server is already running, terminating this process")
		return nil
	case StatusStale:
		s.log.Info().Msg("removing stale socket file")

		if err := os.Remove(socketPath); err != nil {
			return fmt.Errorf("could not remove stale socket file: %w", err)
		}

		_ = os.Remove(pidPath)
	case StatusNotRunning:
	}

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("could not bind to local socket: %w", err)
	}

	s.ln = ln

	if err := writePIDFile(pidPath); err != nil {
		_ = ln.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.cleanup()

	opts := append(
		[]timer.DriverOption{timer.WithActionPoll(s.cfg.Sessions.ActionPoll)},
		s.driverOpts...,
	)

	s.driver = timer.NewDriver(
		s.cfg.TimerConfig(),
		s.notifier.PhaseEnd,
		opts...,
	)

	go s.driver.Run(ctx)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	s.log.Info().Str("socket", socketPath).Msg("listening for connections")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return fmt.Errorf("incoming connection failed: %w", err)
		}

		go s.handleConn(ctx, conn)
	}
}

// handleConn serves one attached client: it forwards every broadcast
// snapshot and routes every inbound message, consuming both concurrently so
// a quiet client still receives live updates.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	log := s.log.With().Str("conn", uuid.NewString()).Logger()
	log.Info().Msg("new connection received")

	defer func() {
		_ = conn.Close()
		log.Info().Msg("closing connection")
	}()

	sub := s.driver.Subscribe()
	defer sub.Close()

	msgs := make(chan ipc.ClientMsg)
	readErr := make(chan error, 1)

	go func() {
		for {
			msg, err := ipc.ReadClientMsg(conn)
			if err != nil {
				readErr <- err
				return
			}

			select {
			case msgs <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				log.Info().Msg("client connection ended")
			} else {
				log.Error().Err(err).Msg("could not read client message")
			}

			return

		case msg := <-msgs:
			if done := s.route(msg, log); done {
				return
			}

		case view := <-sub.Ch():
			out := ipc.ServerMsg{Kind: ipc.KindTimer, Timer: &view}

			if err := ipc.Write(conn, out); err != nil {
				log.Error().Err(err).Msg("could not send snapshot to client")
				return
			}
		}
	}
}

// route maps one inbound client message to its effect and reports whether
// the connection should close.
func (s *Server) route(msg ipc.ClientMsg, log zerolog.Logger) bool {
	switch msg.Kind {
	case ipc.KindQuit:
		log.Info().Msg("client told server to shut down")
		s.shutdown()

		return true

	case ipc.KindDetach:
		log.Info().Msg("client detached")
		return true

	case ipc.KindSync:
		log.Debug().Msg("client synced with server")
		return false

	default:
		action, ok := msg.Kind.Action()
		if !ok {
			// unreachable for validated messages
			log.Warn().Str("kind", string(msg.Kind)).Msg("unroutable message")
			return false
		}

		s.driver.Actions() <- action

		return false
	}
}

// shutdown removes the endpoint resource and terminates the process. Other
// connections are not drained; liveness of the endpoint is the contract,
// not connection-level graceful shutdown.
func (s *Server) shutdown() {
	s.log.Info().Msg("shutting down")
	s.cleanup()
	s.exit(0)
}

// cleanup closes the listener and performs a best-effort removal of the
// endpoint resources. Safe to call more than once.
func (s *Server) cleanup() {
	if s.ln != nil {
		_ = s.ln.Close()
	}

	if err := os.Remove(s.cfg.System.SocketPath); err != nil &&
		!errors.Is(err, os.ErrNotExist) {
		s.log.Error().Err(err).Msg("could not remove socket file")
	}

	_ = os.Remove(s.cfg.System.PIDPath)
}
