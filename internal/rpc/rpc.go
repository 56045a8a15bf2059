// Package rpc implements a JSON-RPC 2.0 multiplexer over a single
// bidirectional byte-message channel (an RTC data channel in production,
// anything satisfying DataChannel in tests): concurrent calls share one
// wire, correlated by a monotonically increasing id, with unsolicited
// server notifications routed to a side-channel callback.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
)

// Request is an outgoing JSON-RPC 2.0 request or notification (when ID is
// nil, Marshal omits it per spec).
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      *uint64         `json:"id,omitempty"`
}

// Response is an incoming JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      *uint64         `json:"id,omitempty"`
}

// Notification is an incoming server-initiated message with no id.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DataChannel is the minimal surface the multiplexer needs from a
// transport. *webrtc.DataChannel satisfies it once wrapped (see
// internal/rtctransport); tests substitute an in-memory fake.
type DataChannel interface {
	Send(data []byte) error
	OnMessage(func(data []byte))
	OnClose(func())
	IsOpen() bool
}

// nextID is shared by every Client in the process, so request ids are
// unique process-wide rather than per client.
var nextID atomic.Uint64

// Client multiplexes JSON-RPC calls over a single DataChannel.
type Client struct {
	channel DataChannel
	log     *slog.Logger

	mu      sync.Mutex // serializes writes to channel
	pending map[uint64]chan response

	notifyMu sync.RWMutex
	onNotify func(method string, params json.RawMessage)

	closedMu sync.Mutex
	closed   bool
	closeErr error
}

type response struct {
	result json.RawMessage
	err    *Error

	// closeErr, when set, means this slot was resolved by the channel
	// closing rather than by a matching reply; Call returns it verbatim
	// (it already wraps kvmerr.ErrChannelClosed) instead of treating it
	// as a JSON-RPC error response.
	closeErr error
}

// NewClient wraps channel in a Client. The channel must already be open or
// become open shortly: Call returns kvmerr.ErrChannelNotOpen immediately if
// it never opens before the call.
func NewClient(channel DataChannel) *Client {
	c := &Client{
		channel: channel,
		log:     logging.For("rpc"),
		pending: make(map[uint64]chan response),
	}

	channel.OnMessage(c.handleMessage)
	channel.OnClose(func() {
		c.fail(kvmerr.Wrap(kvmerr.ErrChannelClosed, "rpc channel closed"))
	})

	return c
}

// OnNotification registers a callback invoked for every server-initiated
// message with no id. Only one callback may be registered; a later call
// replaces the former.
func (c *Client) OnNotification(fn func(method string, params json.RawMessage)) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.onNotify = fn
}

// Call sends a JSON-RPC request and blocks until a matching response
// arrives, ctx is done, or the channel closes.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if !c.channel.IsOpen() {
		return nil, kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot call %s", method)
	}

	var rawParams json.RawMessage
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encode params for %s: %w", method, err)
		}
		rawParams = encoded
	}

	id := nextID.Add(1)
	respCh := make(chan response, 1)

	c.mu.Lock()
	c.pending[id] = respCh
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	req := Request{JSONRPC: "2.0", Method: method, Params: rawParams, ID: &id}
	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request %s: %w", method, err)
	}

	c.mu.Lock()
	sendErr := c.channel.Send(encoded)
	c.mu.Unlock()
	if sendErr != nil {
		return nil, kvmerr.Wrap(kvmerr.ErrChannelClosed, "send %s: %v", method, sendErr)
	}

	select {
	case resp := <-respCh:
		if resp.closeErr != nil {
			return nil, resp.closeErr
		}
		if resp.err != nil {
			return nil, &kvmerr.RemoteError{Code: resp.err.Code, Message: resp.err.Message, Data: resp.err.Data}
		}
		return resp.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Notify sends a JSON-RPC notification (no id, no response expected).
func (c *Client) Notify(method string, params any) error {
	if !c.channel.IsOpen() {
		return kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot notify %s", method)
	}

	var rawParams json.RawMessage
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("encode params for %s: %w", method, err)
		}
		rawParams = encoded
	}

	msg := Request{JSONRPC: "2.0", Method: method, Params: rawParams}
	encoded, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", method, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.channel.Send(encoded); err != nil {
		return kvmerr.Wrap(kvmerr.ErrChannelClosed, "send notify %s: %v", method, err)
	}
	return nil
}

func (c *Client) handleMessage(data []byte) {
	var probe struct {
		ID     *uint64 `json:"id"`
		Method string  `json:"method"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		c.log.Warn("discarding malformed rpc message", logging.KeyError, err)
		return
	}

	if probe.ID != nil && probe.Method == "" {
		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			c.log.Warn("discarding malformed rpc response", logging.KeyError, err)
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[*resp.ID]
		c.mu.Unlock()
		if ok {
			ch <- response{result: resp.Result, err: resp.Error}
		}
		return
	}

	if probe.Method != "" && probe.ID == nil {
		var notif Notification
		if err := json.Unmarshal(data, &notif); err != nil {
			c.log.Warn("discarding malformed rpc notification", logging.KeyError, err)
			return
		}
		c.notifyMu.RLock()
		cb := c.onNotify
		c.notifyMu.RUnlock()
		if cb != nil {
			cb(notif.Method, notif.Params)
		}
		return
	}
}

// fail delivers err to every pending call and marks the client closed.
func (c *Client) fail(err error) {
	c.closedMu.Lock()
	c.closed = true
	c.closeErr = err
	c.closedMu.Unlock()

	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[uint64]chan response)
	c.mu.Unlock()

	for _, ch := range pending {
		ch <- response{closeErr: err}
	}
}
