// Package console bridges the operator's own terminal to the appliance's
// "serial" data channel (spec.md §4.8): it puts the controlling terminal
// into raw mode, forwards inbound serial bytes to the terminal, and
// translates keystrokes read from the terminal into the byte sequences the
// appliance's serial console expects.
package console

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
)

// Serial is the minimal surface the bridge needs from the session: raw
// byte send and an inbound data callback. *pkg/kvmclient.Session satisfies
// it via SendSerial/OnSerialData.
type Serial interface {
	SendSerial(data []byte) error
	OnSerialData(fn func(data []byte)) error
}

// Bridge owns the raw-mode terminal state for the lifetime of one
// Open call.
type Bridge struct {
	serial Serial
	in     *os.File
	out    io.Writer
}

// New builds a Bridge over serial, reading keystrokes from in and writing
// inbound serial bytes to out.
func New(serial Serial, in *os.File, out io.Writer) *Bridge {
	return &Bridge{serial: serial, in: in, out: out}
}

// Open puts the terminal into raw mode, installs the inbound-data
// forwarder, and blocks reading keystrokes from the terminal until Ctrl-\
// is read or in returns EOF/an error. Raw mode is restored on every exit
// path, including a panic unwinding through this call.
func (b *Bridge) Open() error {
	log := logging.For("console")

	fd := int(b.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return kvmerr.Wrap(kvmerr.ErrIO, "enter raw mode: %v", err)
	}
	defer func() {
		if restoreErr := term.Restore(fd, oldState); restoreErr != nil {
			log.Warn("failed to restore terminal state", logging.KeyError, restoreErr)
		}
	}()

	if err := b.serial.OnSerialData(func(data []byte) {
		b.out.Write(data)
	}); err != nil {
		return err
	}

	for {
		key, exit, err := b.readKey()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return kvmerr.Wrap(kvmerr.ErrIO, "read terminal: %v", err)
		}
		if exit {
			return nil
		}
		if key != nil {
			if err := b.serial.SendSerial(key); err != nil {
				return err
			}
		}
	}
}

const (
	ctrlBackslash = 0x1c // Ctrl-\ as read from a raw-mode terminal
	backspace     = 0x7f
	esc           = 0x1b
)

func (b *Bridge) readByte() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := b.in.Read(buf)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return buf[0], nil
		}
	}
}

// readKey reads one logical keystroke from the terminal, translating it
// per spec.md §4.8: printable ASCII and Ctrl-<letter> codes pass through
// unchanged (the terminal driver already delivers Ctrl-<letter> as
// letter & 0x1f in raw mode), Backspace (DEL, 0x7f) normalizes to 0x08,
// a bare Esc becomes 0x1b, an arrow key's CSI sequence (ESC [ A/B/C/D)
// passes through as the same three bytes, and Ctrl-\ (0x1c) signals exit.
func (b *Bridge) readKey() (out []byte, exit bool, err error) {
	c, err := b.readByte()
	if err != nil {
		return nil, false, err
	}

	switch {
	case c == ctrlBackslash:
		return nil, true, nil
	case c == backspace:
		return []byte{0x08}, false, nil
	case c == esc:
		return b.readEscapeSequence()
	default:
		return []byte{c}, false, nil
	}
}

// readEscapeSequence disambiguates a bare Esc from an arrow-key CSI
// sequence by blocking for the next byte; a standalone Esc press will
// therefore only be reported once another key follows it.
func (b *Bridge) readEscapeSequence() (out []byte, exit bool, err error) {
	bracket, err := b.readByte()
	if err != nil {
		return nil, false, err
	}
	if bracket != '[' {
		return []byte{esc, bracket}, false, nil
	}
	dir, err := b.readByte()
	if err != nil {
		return nil, false, err
	}
	return []byte{esc, '[', dir}, false, nil
}
