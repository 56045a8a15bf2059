// Package config defines SessionConfig, the set of parameters a caller
// supplies to open a session against the appliance. There is no file or
// environment loader here: callers construct SessionConfig directly, the
// way an embedding application would; loading it from disk or flags is a
// collaborator's job.
package config

import (
	"net/url"
	"regexp"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

// SignallingMethod selects how the initial SDP exchange is carried out.
type SignallingMethod string

const (
	// SignallingAuto tries WebSocket first and falls back to Legacy.
	SignallingAuto SignallingMethod = "auto"
	// SignallingLegacy POSTs a single base64 SDP blob and reads one back.
	SignallingLegacy SignallingMethod = "legacy"
	// SignallingWebSocket trickles ICE candidates over a WebSocket.
	SignallingWebSocket SignallingMethod = "websocket"
)

// SessionConfig describes everything needed to authenticate against an
// appliance and open an RTC session with it.
type SessionConfig struct {
	// Host is the appliance's address, e.g. "192.168.1.50" or
	// "kvm.example.com:8080". No scheme.
	Host string

	// Password authenticates against /auth/login-local. An empty
	// password opens an anonymous session: no login request is sent.
	Password string

	// APIPath is the legacy signalling endpoint. Defaults to
	// "/webrtc/session" when empty.
	APIPath string

	// Signalling selects the SDP exchange method. Defaults to
	// SignallingAuto when empty.
	Signalling SignallingMethod

	// KeyboardLayout is an ISO-style layout code ("en-US", "es-ES").
	// Defaults to en-US when empty. Validate rejects a code not of the form
	// "ll-CC"; a well-formed code is kept as given.
	KeyboardLayout string

	// NoAutoLogout skips the best-effort logout call during Shutdown.
	NoAutoLogout bool

	// InsecureSkipVerify is accepted but not read anywhere: every
	// connection this module makes uses plain http:// and ws://, so no TLS
	// certificate is verified whatever its value.
	InsecureSkipVerify bool
}

var (
	hostPortRegex   = regexp.MustCompile(`^[^\s]+$`)
	layoutCodeRegex = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)
)

// Validate checks SessionConfig for values that would make a connection
// attempt meaningless, returning a kvmerr.ErrConfigInvalid-wrapped error
// describing the first problem found. It also fills in documented
// defaults (Signalling, KeyboardLayout) on the receiver.
func (c *SessionConfig) Validate() error {
	if c.Host == "" {
		return kvmerr.Wrap(kvmerr.ErrConfigInvalid, "host must not be empty")
	}
	if !hostPortRegex.MatchString(c.Host) {
		return kvmerr.Wrap(kvmerr.ErrConfigInvalid, "host %q contains whitespace", c.Host)
	}
	if _, err := url.Parse("http://" + c.Host); err != nil {
		return kvmerr.Wrap(kvmerr.ErrConfigInvalid, "host %q is not a valid address: %v", c.Host, err)
	}

	switch c.Signalling {
	case "":
		c.Signalling = SignallingAuto
	case SignallingAuto, SignallingLegacy, SignallingWebSocket:
	default:
		return kvmerr.Wrap(kvmerr.ErrConfigInvalid, "unknown signalling method %q", c.Signalling)
	}

	if c.KeyboardLayout == "" {
		c.KeyboardLayout = "en-US"
	}
	if !layoutCodeRegex.MatchString(c.KeyboardLayout) {
		return kvmerr.Wrap(kvmerr.ErrConfigInvalid, "malformed keyboard layout code %q", c.KeyboardLayout)
	}

	if c.APIPath == "" {
		c.APIPath = "/webrtc/session"
	}

	return nil
}
