package signaling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kvm-remote/kvmrpc/internal/config"
	"github.com/kvm-remote/kvmrpc/internal/rtctransport"
)

// TestConnectAutoFallsBackToLegacy exercises the scenario where the
// appliance has no WebSocket signalling endpoint (or it is down): Auto
// mode must fail over to Legacy and still produce an open-able session.
func TestConnectAutoFallsBackToLegacy(t *testing.T) {
	remote, err := rtctransport.New(nil)
	if err != nil {
		t.Fatalf("create remote transport: %v", err)
	}
	defer remote.Close()

	legacyHandler := legacyApplianceHandler(t, remote)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			http.Error(w, "no such endpoint", http.StatusNotFound)
			return
		}
		legacyHandler(w, r)
	}))
	defer server.Close()

	cfg := &config.SessionConfig{
		Host:       strings.TrimPrefix(server.URL, "http://"),
		Signalling: config.SignallingAuto,
		APIPath:    "/webrtc/session",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	outcome, err := Connect(ctx, server.Client(), cfg, "")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer outcome.Transport.Close()

	if outcome.Method != config.SignallingLegacy {
		t.Fatalf("expected fallback to legacy, got %q", outcome.Method)
	}
	if outcome.Channel == nil {
		t.Fatal("expected non-nil rpc channel")
	}
}
