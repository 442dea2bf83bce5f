// Package terminal adapts the host process's standard input to the
// Universal Machine's byte-oriented, blocking input opcode.
//
// Adapted from a terminal host that puts stdin in raw mode and polls it
// non-blockingly to feed a keyboard MMIO device. The input opcode here is
// a blocking read, so the polling loop and its non-blocking syscall
// plumbing have no analog — only the raw-mode setup/teardown survives,
// stripped to a plain NewHost/Close pair around a blocking *bufio.Reader.
package terminal

import (
	"bufio"
	"os"

	"golang.org/x/term"
)

// Host puts stdin into raw mode for the duration of a run when stdin is
// an interactive terminal, so the input opcode observes exactly the bytes
// typed — no line buffering, no local echo — the same byte-exact contract
// it would get from a redirected file or pipe. Only ever constructed by
// the CLI entry point; machine package tests drive ByteSource/ByteSink
// directly and never touch this type.
type Host struct {
	fd       int
	oldState *term.State
	reader   *bufio.Reader
}

// NewHost prepares stdin for reading. If stdin is not an interactive
// terminal (redirected from a file or pipe), it leaves the terminal
// untouched and only wraps stdin in a buffered reader.
func NewHost() (*Host, error) {
	h := &Host{fd: int(os.Stdin.Fd()), reader: bufio.NewReader(os.Stdin)}

	if !term.IsTerminal(h.fd) {
		return h, nil
	}

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		return nil, err
	}
	h.oldState = oldState
	return h, nil
}

// Reader returns the byte source to pass to machine.Run.
func (h *Host) Reader() *bufio.Reader { return h.reader }

// Close restores the terminal to its original mode, if it was changed.
func (h *Host) Close() error {
	if h.oldState == nil {
		return nil
	}
	err := term.Restore(h.fd, h.oldState)
	h.oldState = nil
	return err
}
