//go:build unix

package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Init when stdin is not attached to a tty
var ErrNotTerminal = errors.New("stdin is not a terminal")

// pollTimeoutMs bounds each wait so the reader observes stop and the lone-ESC deadline
const pollTimeoutMs = 100

// rawMode remembers the mode replaced by the last Init so EmergencyReset can put it back
var rawMode struct {
	mu    sync.Mutex
	fd    int
	saved *term.State
}

// fileBackend drives a tty through a pair of files, stdin/stdout in production
type fileBackend struct {
	in  *os.File
	out *os.File
	buf [256]byte
}

func newBackend() Backend {
	return newFileBackend(os.Stdin, os.Stdout)
}

func newFileBackend(in, out *os.File) *fileBackend {
	return &fileBackend{in: in, out: out}
}

func (b *fileBackend) Init() error {
	fd := int(b.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}

	rawMode.mu.Lock()
	rawMode.fd, rawMode.saved = fd, saved
	rawMode.mu.Unlock()
	return nil
}

func (b *fileBackend) Fini() {
	restoreSavedMode()
}

func (b *fileBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(int(b.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

func (b *fileBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// Read waits for input, returning (nil, nil) on timeout or stop
// io.EOF reports that the input side has been closed or hung up
func (b *fileBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	fd := int(b.in.Fd())

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollTimeoutMs)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return nil, fmt.Errorf("poll input: %w", err)
		case n == 0:
			return nil, nil
		}

		// Hangup without readable data: nothing will ever arrive
		revents := fds[0].Revents
		if revents&unix.POLLIN == 0 && revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
			return nil, io.EOF
		}

		rn, err := unix.Read(fd, b.buf[:])
		switch {
		case err == unix.EINTR || err == unix.EAGAIN:
			continue
		case err != nil:
			return nil, fmt.Errorf("read input: %w", err)
		case rn == 0:
			return nil, io.EOF
		}
		return bytes.Clone(b.buf[:rn]), nil
	}
}

// restoreSavedMode puts back the mode captured by Init, once
func restoreSavedMode() {
	rawMode.mu.Lock()
	defer rawMode.mu.Unlock()

	if rawMode.saved == nil {
		return
	}
	_ = term.Restore(rawMode.fd, rawMode.saved)
	rawMode.saved = nil
}
