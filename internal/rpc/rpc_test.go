package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

// loopbackChannel echoes requests back as successful responses whose
// result is the request's own params, simulating a peer that knows every
// method. It also supports manual injection for notification/error tests.
type loopbackChannel struct {
	mu       sync.Mutex
	open     bool
	onMsg    func([]byte)
	onClose  func()
	sent     [][]byte
	respond  func(req Request) []byte // optional override
}

func newLoopbackChannel() *loopbackChannel {
	return &loopbackChannel{open: true}
}

func (l *loopbackChannel) Send(data []byte) error {
	l.mu.Lock()
	l.sent = append(l.sent, data)
	l.mu.Unlock()

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	if req.ID == nil {
		return nil // notification, no response
	}

	go func() {
		var respBytes []byte
		if l.respond != nil {
			respBytes = l.respond(req)
		} else {
			resp := Response{JSONRPC: "2.0", Result: req.Params, ID: req.ID}
			respBytes, _ = json.Marshal(resp)
		}
		l.mu.Lock()
		cb := l.onMsg
		l.mu.Unlock()
		if cb != nil {
			cb(respBytes)
		}
	}()
	return nil
}

func (l *loopbackChannel) OnMessage(fn func([]byte)) {
	l.mu.Lock()
	l.onMsg = fn
	l.mu.Unlock()
}

func (l *loopbackChannel) OnClose(fn func()) {
	l.mu.Lock()
	l.onClose = fn
	l.mu.Unlock()
}

func (l *loopbackChannel) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

func (l *loopbackChannel) close() {
	l.mu.Lock()
	l.open = false
	cb := l.onClose
	l.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func TestCallEchoRoundTrip(t *testing.T) {
	ch := newLoopbackChannel()
	client := NewClient(ch)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := client.Call(ctx, "ping", map[string]string{"hello": "world"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(result, &decoded); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if decoded["hello"] != "world" {
		t.Fatalf("expected echoed params, got %v", decoded)
	}
}

func TestCallOnClosedChannelFails(t *testing.T) {
	ch := newLoopbackChannel()
	ch.close()
	client := NewClient(ch)

	_, err := client.Call(context.Background(), "ping", nil)
	if !errors.Is(err, kvmerr.ErrChannelNotOpen) {
		t.Fatalf("expected ErrChannelNotOpen, got %v", err)
	}
}

func TestCallSurfacesRemoteError(t *testing.T) {
	ch := newLoopbackChannel()
	ch.respond = func(req Request) []byte {
		resp := Response{JSONRPC: "2.0", Error: &Error{Code: -32601, Message: "method not found"}, ID: req.ID}
		b, _ := json.Marshal(resp)
		return b
	}
	client := NewClient(ch)

	_, err := client.Call(context.Background(), "bogus", nil)
	var remoteErr *kvmerr.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remoteErr.Code != -32601 {
		t.Fatalf("expected code -32601, got %d", remoteErr.Code)
	}
	if !errors.Is(err, kvmerr.ErrRemoteError) {
		t.Fatal("expected errors.Is to match ErrRemoteError")
	}
}

func TestNotificationRoutedToCallback(t *testing.T) {
	ch := newLoopbackChannel()
	client := NewClient(ch)

	received := make(chan string, 1)
	client.OnNotification(func(method string, params json.RawMessage) {
		received <- method
	})

	notif := Notification{JSONRPC: "2.0", Method: "log", Params: json.RawMessage(`{"line":"hi"}`)}
	b, _ := json.Marshal(notif)
	ch.mu.Lock()
	cb := ch.onMsg
	ch.mu.Unlock()
	cb(b)

	select {
	case method := <-received:
		if method != "log" {
			t.Fatalf("expected method log, got %s", method)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestConcurrentPendingCallsDoNotCollide(t *testing.T) {
	ch := newLoopbackChannel()
	client := NewClient(ch)

	const n = 100
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			result, err := client.Call(ctx, "ping", map[string]int{"n": i})
			if err != nil {
				errs <- err
				return
			}
			var decoded map[string]int
			if err := json.Unmarshal(result, &decoded); err != nil {
				errs <- err
				return
			}
			if decoded["n"] != i {
				errs <- errors.New("mismatched echo")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent call failed: %v", err)
	}
}

func TestChannelCloseFailsPendingCall(t *testing.T) {
	ch := newLoopbackChannel()
	ch.respond = func(req Request) []byte { return nil } // never respond
	client := NewClient(ch)

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := client.Call(ctx, "slow", nil)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	ch.close()

	select {
	case err := <-done:
		if !errors.Is(err, kvmerr.ErrChannelClosed) {
			t.Fatalf("expected ErrChannelClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pending call to fail")
	}
}
