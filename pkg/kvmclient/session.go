// Package kvmclient is the session facade: it authenticates against the
// appliance, negotiates the RTC transport over one of the two signalling
// paths, installs the JSON-RPC multiplexer on the resulting "rpc" data
// channel, and exposes the keyboard/mouse/video/serial primitives and the
// peripheral command namespace (pkg/kvmclient/commands) built on top of it.
package kvmclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kvm-remote/kvmrpc/internal/config"
	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
	"github.com/kvm-remote/kvmrpc/internal/rpc"
	"github.com/kvm-remote/kvmrpc/internal/rtctransport"
	"github.com/kvm-remote/kvmrpc/internal/signaling"
	"github.com/kvm-remote/kvmrpc/internal/videocapture"
	"github.com/kvm-remote/kvmrpc/pkg/kvmauth"
)

// State is a Session's position in the New -> Authenticating -> Signalling
// -> Open -> Closing -> Closed lifecycle (spec.md §4.5).
type State int32

const (
	StateNew State = iota
	StateAuthenticating
	StateSignalling
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateAuthenticating:
		return "authenticating"
	case StateSignalling:
		return "signalling"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the facade callers drive: one appliance, one RTC transport,
// one RPC multiplexer. It owns the transport exclusively; the RPC client
// holds only a non-owning reference to the primary channel.
type Session struct {
	cfg *config.SessionConfig
	id  string
	log interface {
		Debug(msg string, args ...any)
		Warn(msg string, args ...any)
		Info(msg string, args ...any)
	}

	httpClient *http.Client

	state   atomic.Int32
	openCh  chan struct{}
	openced sync.Once

	connectOnce sync.Once
	connectErr  error

	closeOnce sync.Once
	closeErr  error

	mu            sync.Mutex
	cred          *kvmauth.Credential
	transport     *rtctransport.Transport
	channel       *rtctransport.Channel
	serialChannel *rtctransport.Channel
	rpcClient     *rpc.Client
	outcome       *signaling.Outcome
	capturer      *videocapture.Capturer
}

// New builds a Session from cfg. cfg is validated and defaulted in place;
// New returns kvmerr.ErrConfigInvalid if validation fails.
func New(cfg *config.SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("build cookie jar: %w", err)
	}

	sessionID := uuid.NewString()
	s := &Session{
		cfg:        cfg,
		id:         sessionID,
		log:        logging.WithSession(logging.For("kvmclient"), sessionID),
		httpClient: &http.Client{Jar: jar},
		openCh:     make(chan struct{}),
	}
	s.state.Store(int32(StateNew))
	return s, nil
}

// State reports the Session's current lifecycle position.
func (s *Session) State() State {
	return State(s.state.Load())
}

// ID returns the session's correlation id, used only in log fields.
func (s *Session) ID() string {
	return s.id
}

// Connect runs the New -> Authenticating -> Signalling -> Open sequence
// exactly once; concurrent and repeated calls block on (or replay) the
// result of the first. It returns once the "rpc" data channel is open.
func (s *Session) Connect(ctx context.Context) error {
	s.connectOnce.Do(func() {
		s.connectErr = s.connect(ctx)
	})
	return s.connectErr
}

// EnsureConnected calls Connect if the session has never been connected.
// It is equivalent to Connect: both are idempotent and safe to call from
// multiple goroutines.
func (s *Session) EnsureConnected(ctx context.Context) error {
	return s.Connect(ctx)
}

// WaitForChannelOpen is an idempotent readiness barrier: it blocks until
// the primary "rpc" channel opens or ctx is done. A session that fails or
// closes without ever opening does not release it; only ctx does.
func (s *Session) WaitForChannelOpen(ctx context.Context) error {
	select {
	case <-s.openCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) connect(ctx context.Context) error {
	s.state.Store(int32(StateAuthenticating))
	s.log.Debug("authenticating")

	scheme := "http"
	cred, err := kvmauth.Login(ctx, s.httpClient, scheme, s.cfg.Host, s.cfg.Password)
	if err != nil {
		s.state.Store(int32(StateClosed))
		return err
	}
	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()

	s.state.Store(int32(StateSignalling))
	s.log.Debug("negotiating rtc transport")

	outcome, err := signaling.Connect(ctx, s.httpClient, s.cfg, cred.AuthToken)
	if err != nil {
		s.state.Store(int32(StateClosed))
		return err
	}

	rpcClient := rpc.NewClient(outcome.Channel)

	s.mu.Lock()
	s.outcome = outcome
	s.transport = outcome.Transport
	s.channel = outcome.Channel
	s.rpcClient = rpcClient
	s.mu.Unlock()

	if !outcome.Channel.WaitOpen(ctx.Done()) {
		s.state.Store(int32(StateClosed))
		return kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "rpc channel did not open")
	}

	s.channel.OnClose(func() {
		s.log.Warn("rpc channel closed")
		s.state.Store(int32(StateClosed))
	})

	s.state.Store(int32(StateOpen))
	s.openced.Do(func() { close(s.openCh) })
	s.log.Info("session open", "signalling", outcome.Method)
	return nil
}

// RPC returns the underlying JSON-RPC client, or nil before connect.
// Peripheral command wrappers use this rather than a Call(method,params)
// passthrough so they can decode typed results without an extra hop.
func (s *Session) RPC() *rpc.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rpcClient
}

// SendSerial writes raw bytes to the "serial" data channel, creating it on
// first use. No framing is applied, per spec.md §4.4.
func (s *Session) SendSerial(data []byte) error {
	ch, err := s.ensureSerialChannel()
	if err != nil {
		return err
	}
	if !ch.IsOpen() {
		return kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "serial channel not open")
	}
	return ch.Send(data)
}

// OnSerialData registers the callback invoked for every inbound message on
// the "serial" data channel, creating the channel on first use just as
// SendSerial does. The console bridge calls it once when it opens.
func (s *Session) OnSerialData(fn func(data []byte)) error {
	ch, err := s.ensureSerialChannel()
	if err != nil {
		return err
	}
	ch.OnMessage(fn)
	return nil
}

// ensureSerialChannel creates the "serial" data channel on demand,
// renegotiating over the legacy signalling path if needed. The WebSocket
// signalling path cannot renegotiate post-open: the data
// channel is still created locally, but it will only ever reach Open if
// the appliance itself opens a matching stream without a fresh offer.
func (s *Session) ensureSerialChannel() (*rtctransport.Channel, error) {
	s.mu.Lock()
	if s.serialChannel != nil {
		ch := s.serialChannel
		s.mu.Unlock()
		return ch, nil
	}
	transport := s.transport
	outcome := s.outcome
	s.mu.Unlock()

	if transport == nil {
		return nil, kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot open serial channel before connect")
	}

	ch, err := transport.CreateDataChannel("serial")
	if err != nil {
		return nil, fmt.Errorf("create serial data channel: %w", err)
	}

	if outcome != nil && outcome.Renegotiate != nil {
		if err := outcome.Renegotiate(context.Background()); err != nil {
			s.log.Warn("serial channel renegotiation failed, channel may never open", logging.KeyError, err)
		}
	}

	s.mu.Lock()
	s.serialChannel = ch
	s.mu.Unlock()
	return ch, nil
}

// Shutdown runs the Open -> Closing -> Closed sequence exactly once: a
// best-effort logout (unless NoAutoLogout), then closes the serial channel
// before the peer connection (spec.md §9 Open Question (d)), then the
// transport itself. Safe to call more than once and safe to call before
// Connect.
func (s *Session) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateClosing))
		s.log.Debug("shutting down")

		s.mu.Lock()
		cred := s.cred
		transport := s.transport
		serial := s.serialChannel
		s.mu.Unlock()

		if !s.cfg.NoAutoLogout {
			kvmauth.Logout(ctx, s.httpClient, "http", s.cfg.Host, cred)
		}

		if serial != nil {
			if err := serial.Close(); err != nil {
				s.log.Warn("close serial channel", logging.KeyError, err)
			}
		}

		if transport != nil {
			if err := transport.Close(); err != nil {
				s.closeErr = fmt.Errorf("close transport: %w", err)
			}
		}

		s.state.Store(int32(StateClosed))
		s.log.Info("session closed")
	})
	return s.closeErr
}
