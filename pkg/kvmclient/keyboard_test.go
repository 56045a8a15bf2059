package kvmclient

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvm-remote/kvmrpc/internal/hidcodes"
	"github.com/kvm-remote/kvmrpc/internal/rpc"
)

// fakeChannel is a minimal rpc.DataChannel that answers every request with
// its own params as the result, mirroring internal/rpc's loopback test
// double so Session-level tests can drive a real *rpc.Client without a
// live RTC transport.
type fakeChannel struct {
	mu    sync.Mutex
	open  bool
	onMsg func([]byte)
	calls []json.RawMessage
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{open: true}
}

func (f *fakeChannel) Send(data []byte) error {
	f.mu.Lock()
	f.calls = append(f.calls, append([]byte(nil), data...))
	onMsg := f.onMsg
	f.mu.Unlock()

	var req struct {
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
		ID     *uint64         `json:"id"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	if req.ID == nil {
		return nil
	}
	resp := map[string]any{"jsonrpc": "2.0", "result": json.RawMessage(req.Params), "id": *req.ID}
	b, _ := json.Marshal(resp)
	go func() {
		if onMsg != nil {
			onMsg(b)
		}
	}()
	return nil
}

func (f *fakeChannel) OnMessage(fn func([]byte)) {
	f.mu.Lock()
	f.onMsg = fn
	f.mu.Unlock()
}

func (f *fakeChannel) OnClose(fn func()) {}

func (f *fakeChannel) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *fakeChannel) sentMethods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	methods := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		var req struct {
			Method string `json:"method"`
		}
		json.Unmarshal(c, &req)
		methods = append(methods, req.Method)
	}
	return methods
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Info(msg string, args ...any)  {}

// testSession builds a Session wired directly to a fake data channel,
// bypassing Connect/signalling entirely -- it is already "open" as far as
// the RPC-calling methods under test are concerned.
func testSession(ch rpc.DataChannel) *Session {
	s := &Session{log: noopLogger{}}
	s.rpcClient = rpc.NewClient(ch)
	return s
}

func TestKeyboardReportSendsModifierAndKeys(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.KeyboardReport(context.Background(), hidcodes.ModShiftLeft, []byte{0x04})
	require.NoError(t, err)

	ch.mu.Lock()
	last := ch.calls[len(ch.calls)-1]
	ch.mu.Unlock()
	var req struct {
		Method string `json:"method"`
		Params struct {
			Modifier uint64  `json:"modifier"`
			Keys     []uint8 `json:"keys"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(last, &req))
	assert.Equal(t, "keyboardReport", req.Method)
	assert.EqualValues(t, hidcodes.ModShiftLeft, req.Params.Modifier)
	assert.Equal(t, []uint8{0x04}, req.Params.Keys)
}

func TestKeyboardReportBeforeConnectFails(t *testing.T) {
	s := &Session{log: noopLogger{}}
	err := s.KeyboardReport(context.Background(), 0, nil)
	assert.Error(t, err)
}

func TestSendTextSendsPressAndReleaseReports(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendText(context.Background(), "aB")
	require.NoError(t, err)

	// Each character is one press report (non-zero keys) followed by one
	// release report (empty keys); two characters means four reports.
	methods := ch.sentMethods()
	assert.Len(t, methods, 4)
	for _, m := range methods {
		assert.Equal(t, "keyboardReport", m)
	}
}

func TestSendTextSkipsUnsupportedCharacters(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	// U+1F600 (an emoji) has no entry in the ASCII table and must be
	// skipped rather than failing the call.
	err := s.SendText(context.Background(), "a\U0001F600b")
	require.NoError(t, err)
	assert.Len(t, ch.sentMethods(), 4) // only 'a' and 'b' produce reports
}

func TestSendTextWithLayoutFailsOnUnmappedCharacter(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendTextWithLayout(context.Background(), "\U0001F600", "en-US", 0)
	assert.Error(t, err)
}

func TestSendTextWithLayoutTypesPlainASCII(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendTextWithLayout(context.Background(), "a", "en-US", 0)
	require.NoError(t, err)
	assert.Len(t, ch.sentMethods(), 2)
}

// TestHelloNotepadScenarioEndsWithZeroState exercises spec.md §8's
// "hello-notepad" end-to-end scenario: open a run dialog with GUI, type a
// target, confirm with Enter, type a message. Every report in the
// sequence is a keyboardReport call, and per the invariant in §8, the
// final emitted report must carry modifier=0 and an empty key set.
func TestHelloNotepadScenarioEndsWithZeroState(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)
	ctx := context.Background()

	require.NoError(t, s.SendKeyCombinations(ctx, []KeyCombo{
		{Modifier: hidcodes.ModGUILeft, InstantRelease: true},
	}))
	require.NoError(t, s.SendText(ctx, "notepad"))
	require.NoError(t, s.SendKeyCombinations(ctx, []KeyCombo{
		{Keys: []byte{0x28}, InstantRelease: true}, // Enter
	}))
	require.NoError(t, s.SendText(ctx, "Hello World"))

	methods := ch.sentMethods()
	require.NotEmpty(t, methods)
	for _, m := range methods {
		assert.Equal(t, "keyboardReport", m)
	}

	ch.mu.Lock()
	last := ch.calls[len(ch.calls)-1]
	ch.mu.Unlock()
	var req struct {
		Params struct {
			Modifier uint64  `json:"modifier"`
			Keys     []uint8 `json:"keys"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(last, &req))
	assert.Zero(t, req.Params.Modifier)
	assert.Empty(t, req.Params.Keys)
}
