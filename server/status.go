package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// Status is the observable state of the local endpoint.
type Status int

const (
	// StatusNotRunning means no endpoint resource exists.
	StatusNotRunning Status = iota

	// StatusRunning means the endpoint exists and the PID recorded next to
	// it belongs to a live process.
	StatusRunning

	// StatusStale means the endpoint exists but no live server owns it, so
	// it is safe to remove.
	StatusStale
)

// Probe inspects the socket file and its colocated PID file. Any mismatch
// between the two is reported as stale rather than as an error.
func Probe(socketPath, pidPath string) Status {
	if _, err := os.Stat(socketPath); err != nil {
		return StatusNotRunning
	}

	pid, err := readPIDFile(pidPath)
	if err != nil {
		return StatusStale
	}

	if processAlive(pid) {
		return StatusRunning
	}

	return StatusStale
}

func readPIDFile(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("malformed pid file %s: %w", path, err)
	}

	return pid, nil
}

func writePIDFile(path string) error {
	pid := strconv.Itoa(os.Getpid())

	if err := os.WriteFile(path, []byte(pid+"\n"), 0o600); err != nil {
		return fmt.Errorf("could not write pid file: %w", err)
	}

	return nil
}

// processAlive checks OS-level liveness of exactly the given PID. EPERM
// still counts as alive: the process exists, it just belongs to someone
// else.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = proc.Signal(syscall.Signal(0))

	return err == nil || errors.Is(err, syscall.EPERM)
}
