// Package rtctransport wraps pion/webrtc into the pair of data channels
// and one inbound video track this client needs, registering H.264 as the
// only receive codec and the two SRTP protection profiles the appliance
// offers.
package rtctransport

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pion/dtls/v3"
	"github.com/pion/rtcp"
	"github.com/pion/webrtc/v4"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

// Transport owns the peer connection and the data channels opened on it.
type Transport struct {
	pc *webrtc.PeerConnection

	onTrack func(*webrtc.TrackRemote, *webrtc.RTPReceiver)
}

// New builds a PeerConnection configured for this appliance: H.264 video
// receive-only, both required SRTP protection profiles, and the supplied
// ICE server list (may be empty, pion then uses host candidates only).
func New(iceServers []webrtc.ICEServer) (*Transport, error) {
	mediaEngine := &webrtc.MediaEngine{}
	if err := mediaEngine.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeH264,
			ClockRate:   90000,
			SDPFmtpLine: "packetization-mode=1;profile-level-id=42e01f",
		},
		PayloadType: 102,
	}, webrtc.RTPCodecTypeVideo); err != nil {
		return nil, fmt.Errorf("register h264 codec: %w", err)
	}

	settingEngine := webrtc.SettingEngine{}
	if err := settingEngine.SetSRTPProtectionProfiles(
		dtls.SRTP_AEAD_AES_128_GCM,
		dtls.SRTP_AES128_CM_HMAC_SHA1_80,
	); err != nil {
		return nil, fmt.Errorf("set srtp protection profiles: %w", err)
	}

	api := webrtc.NewAPI(webrtc.WithMediaEngine(mediaEngine), webrtc.WithSettingEngine(settingEngine))

	pc, err := api.NewPeerConnection(webrtc.Configuration{ICEServers: iceServers})
	if err != nil {
		return nil, fmt.Errorf("new peer connection: %w", err)
	}

	t := &Transport{pc: pc}

	pc.OnTrack(func(track *webrtc.TrackRemote, receiver *webrtc.RTPReceiver) {
		if t.onTrack != nil {
			t.onTrack(track, receiver)
		}
	})

	return t, nil
}

// OnTrack registers the callback invoked when the remote peer starts the
// video track. Must be set before the remote description that triggers it.
func (t *Transport) OnTrack(fn func(*webrtc.TrackRemote, *webrtc.RTPReceiver)) {
	t.onTrack = fn
}

// OnICECandidate forwards pion's local-candidate callback. A nil candidate
// signals end-of-candidates.
func (t *Transport) OnICECandidate(fn func(*webrtc.ICECandidate)) {
	t.pc.OnICECandidate(fn)
}

// AddICECandidate adds a trickled remote candidate.
func (t *Transport) AddICECandidate(candidate webrtc.ICECandidateInit) error {
	return t.pc.AddICECandidate(candidate)
}

// WriteRTCP sends RTCP packets (e.g. a PictureLossIndication requesting a
// fresh keyframe) to the remote peer over the underlying ICE/DTLS session.
func (t *Transport) WriteRTCP(pkts []rtcp.Packet) error {
	return t.pc.WriteRTCP(pkts)
}

// AddVideoTransceiver adds a receive-only video transceiver so the
// appliance can attach its H.264 track on the next offer/answer round.
// Safe to call once; a second call would add a redundant m-line.
func (t *Transport) AddVideoTransceiver() error {
	_, err := t.pc.AddTransceiverFromKind(webrtc.RTPCodecTypeVideo, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionRecvonly,
	})
	if err != nil {
		return fmt.Errorf("add video transceiver: %w", err)
	}
	return nil
}

// CreateDataChannel opens a new labeled data channel and wraps it for use
// with internal/rpc.
func (t *Transport) CreateDataChannel(label string) (*Channel, error) {
	dc, err := t.pc.CreateDataChannel(label, nil)
	if err != nil {
		return nil, fmt.Errorf("create data channel %q: %w", label, err)
	}
	return wrapChannel(dc), nil
}

// CreateOffer creates and sets the local offer description.
func (t *Transport) CreateOffer() (webrtc.SessionDescription, error) {
	offer, err := t.pc.CreateOffer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("create offer: %w", err)
	}
	if err := t.pc.SetLocalDescription(offer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("set local description: %w", err)
	}
	return offer, nil
}

// CreateAnswer creates and sets the local answer description after a
// remote offer has already been applied.
func (t *Transport) CreateAnswer() (webrtc.SessionDescription, error) {
	answer, err := t.pc.CreateAnswer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("create answer: %w", err)
	}
	if err := t.pc.SetLocalDescription(answer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("set local description: %w", err)
	}
	return answer, nil
}

// SetRemoteDescription applies the remote SDP.
func (t *Transport) SetRemoteDescription(desc webrtc.SessionDescription) error {
	if err := t.pc.SetRemoteDescription(desc); err != nil {
		return kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "set remote description: %v", err)
	}
	return nil
}

// LocalDescription returns the current local SDP, if any.
func (t *Transport) LocalDescription() *webrtc.SessionDescription {
	return t.pc.LocalDescription()
}

// RemoteDescription returns the current remote SDP, if any.
func (t *Transport) RemoteDescription() *webrtc.SessionDescription {
	return t.pc.RemoteDescription()
}

// ConnectionState reports the current ICE connection state.
func (t *Transport) ConnectionState() webrtc.ICEConnectionState {
	return t.pc.ICEConnectionState()
}

// Close tears down the peer connection and every channel on it.
func (t *Transport) Close() error {
	return t.pc.Close()
}

// Channel adapts a *webrtc.DataChannel to the rpc.DataChannel interface
// and adds a synchronous wait for the open event.
type Channel struct {
	dc *webrtc.DataChannel

	mu      sync.Mutex
	openCh  chan struct{}
	opened  atomic.Bool
	onClose []func()
}

func wrapChannel(dc *webrtc.DataChannel) *Channel {
	c := &Channel{dc: dc, openCh: make(chan struct{})}

	dc.OnOpen(func() {
		if c.opened.CompareAndSwap(false, true) {
			close(c.openCh)
		}
	})
	dc.OnClose(c.fireClose)

	return c
}

// fireClose runs every registered close callback, in registration order.
func (c *Channel) fireClose() {
	c.mu.Lock()
	cbs := append([]func(){}, c.onClose...)
	c.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}

// Send writes a binary message to the channel.
func (c *Channel) Send(data []byte) error {
	return c.dc.Send(data)
}

// OnMessage registers the inbound message callback.
func (c *Channel) OnMessage(fn func(data []byte)) {
	c.dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		fn(msg.Data)
	})
}

// OnClose registers a channel-close callback. Multiple callbacks may be
// registered; all of them run, in registration order, when the channel
// closes. This lets the RPC multiplexer's own close handler (installed
// first, to fail pending calls) coexist with the session's close handler
// (installed second, to drive the state transition) instead of the later
// registration silently replacing the earlier one.
func (c *Channel) OnClose(fn func()) {
	c.mu.Lock()
	c.onClose = append(c.onClose, fn)
	c.mu.Unlock()
}

// IsOpen reports whether the channel has reached the open state.
func (c *Channel) IsOpen() bool {
	return c.dc.ReadyState() == webrtc.DataChannelStateOpen
}

// Close closes this data channel without tearing down the peer connection.
// Used to close the "serial" channel ahead of the transport itself
// (spec.md §9 Open Question (d)).
func (c *Channel) Close() error {
	return c.dc.Close()
}

// WaitOpen blocks until the channel opens or the done channel fires.
func (c *Channel) WaitOpen(done <-chan struct{}) bool {
	select {
	case <-c.openCh:
		return true
	case <-done:
		return false
	}
}
