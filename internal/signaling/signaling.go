package signaling

import (
	"context"
	"net/http"

	"github.com/kvm-remote/kvmrpc/internal/config"
	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
	"github.com/kvm-remote/kvmrpc/internal/rtctransport"
)

// Outcome carries the negotiated transport plus a record of which method
// actually completed the exchange, so callers can log or assert the Auto
// fallback took effect.
type Outcome struct {
	Transport *rtctransport.Transport
	Channel   *rtctransport.Channel
	Method    config.SignallingMethod

	// Renegotiate re-runs an offer/answer exchange against the already
	// open transport, used when a video transceiver is added after
	// connect. Only the Legacy path supports this: a WebSocket session's
	// reader goroutine owns the socket, so Renegotiate there always
	// errors.
	Renegotiate func(ctx context.Context) error
}

func unsupportedRenegotiate(ctx context.Context) error {
	return kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "renegotiation is not supported over an active websocket signalling session")
}

// Connect negotiates the RTC transport per cfg.Signalling. Auto tries
// WebSocket first; any error while dialing the socket, reading
// device-metadata or exchanging offer/answer falls back to Legacy. Connect
// returns before the primary stream opens, so a stream that fails to open
// afterwards does not trigger the fallback. Legacy and WebSocket used
// explicitly do not fall back.
func Connect(ctx context.Context, httpClient *http.Client, cfg *config.SessionConfig, authToken string) (*Outcome, error) {
	log := logging.For("signaling")
	const scheme = "http"

	switch cfg.Signalling {
	case config.SignallingLegacy:
		transport, channel, err := ConnectLegacy(ctx, httpClient, scheme, cfg.Host, cfg.APIPath)
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Transport: transport,
			Channel:   channel,
			Method:    config.SignallingLegacy,
			Renegotiate: func(ctx context.Context) error {
				return RenegotiateLegacy(ctx, httpClient, scheme, cfg.Host, cfg.APIPath, transport)
			},
		}, nil

	case config.SignallingWebSocket:
		transport, channel, err := ConnectWebSocket(ctx, cfg.Host, authToken)
		if err != nil {
			return nil, err
		}
		return &Outcome{Transport: transport, Channel: channel, Method: config.SignallingWebSocket, Renegotiate: unsupportedRenegotiate}, nil

	default: // config.SignallingAuto
		transport, channel, err := ConnectWebSocket(ctx, cfg.Host, authToken)
		if err == nil {
			return &Outcome{Transport: transport, Channel: channel, Method: config.SignallingWebSocket, Renegotiate: unsupportedRenegotiate}, nil
		}
		log.Warn("websocket signalling failed before open, falling back to legacy", logging.KeyError, err)

		transport, channel, err = ConnectLegacy(ctx, httpClient, scheme, cfg.Host, cfg.APIPath)
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Transport: transport,
			Channel:   channel,
			Method:    config.SignallingLegacy,
			Renegotiate: func(ctx context.Context) error {
				return RenegotiateLegacy(ctx, httpClient, scheme, cfg.Host, cfg.APIPath, transport)
			},
		}, nil
	}
}
