package rtctransport

import "testing"

func TestNewTransportRegistersH264AndOpens(t *testing.T) {
	tr, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tr.Close()

	ch, err := tr.CreateDataChannel("rpc")
	if err != nil {
		t.Fatalf("create data channel: %v", err)
	}
	if ch.IsOpen() {
		t.Fatal("freshly created channel should not report open before negotiation")
	}
}

func TestCreateOfferProducesLocalDescription(t *testing.T) {
	tr, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tr.Close()

	if _, err := tr.CreateDataChannel("rpc"); err != nil {
		t.Fatalf("create data channel: %v", err)
	}

	offer, err := tr.CreateOffer()
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	if offer.SDP == "" {
		t.Fatal("expected non-empty offer SDP")
	}
	if tr.LocalDescription() == nil {
		t.Fatal("expected local description to be set")
	}
}

// TestChannelOnCloseFansOutToEveryRegisteredCallback guards against a
// regression where a second OnClose registration (e.g. the session's state
// transition) silently replaced the first (e.g. the RPC client's pending-
// call teardown) instead of both running.
func TestChannelOnCloseFansOutToEveryRegisteredCallback(t *testing.T) {
	tr, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tr.Close()

	ch, err := tr.CreateDataChannel("rpc")
	if err != nil {
		t.Fatalf("create data channel: %v", err)
	}

	var firstCalled, secondCalled bool
	ch.OnClose(func() { firstCalled = true })
	ch.OnClose(func() { secondCalled = true })

	ch.fireClose()

	if !firstCalled {
		t.Fatal("expected first registered close callback to run")
	}
	if !secondCalled {
		t.Fatal("expected second registered close callback to run")
	}
}
