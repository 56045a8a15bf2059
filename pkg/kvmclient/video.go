package kvmclient

import (
	"context"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/videocapture"
)

// ensureVideoCapturer adds a receive-only video transceiver on first
// use and renegotiates, installing a Capturer against whatever track the
// appliance subsequently attaches via the transport's OnTrack callback.
func (s *Session) ensureVideoCapturer(ctx context.Context) (*videocapture.Capturer, error) {
	s.mu.Lock()
	if s.capturer != nil {
		cap := s.capturer
		s.mu.Unlock()
		return cap, nil
	}
	transport := s.transport
	outcome := s.outcome
	s.mu.Unlock()

	if transport == nil {
		return nil, kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot capture video before connect")
	}

	capturer := videocapture.New(transport.WriteRTCP)
	transport.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		capturer.SetTrack(track)
	})

	if err := transport.AddVideoTransceiver(); err != nil {
		return nil, err
	}
	if outcome != nil && outcome.Renegotiate != nil {
		if err := outcome.Renegotiate(ctx); err != nil {
			return nil, fmt.Errorf("renegotiate for video: %w", err)
		}
	}

	s.mu.Lock()
	s.capturer = capturer
	s.mu.Unlock()
	return capturer, nil
}

// CaptureScreenshotPNG renegotiates the transport (on first call) to add an
// inbound video transceiver, then waits for the appliance to attach its
// H.264 track and returns the first decoded frame as PNG bytes. See
// internal/videocapture for the RTP/H.264/PNG pipeline itself.
func (s *Session) CaptureScreenshotPNG(ctx context.Context) ([]byte, error) {
	capturer, err := s.ensureVideoCapturer(ctx)
	if err != nil {
		return nil, err
	}
	return capturer.CaptureScreenshotPNG(ctx)
}
