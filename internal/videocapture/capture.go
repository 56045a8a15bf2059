// Package videocapture turns the appliance's inbound H.264 video track
// into a single PNG screenshot on demand: demux RTP, depayload H.264,
// decode the first complete access unit, and PNG-encode it. Per spec.md
// §4.7 this is the only contract the rest of the client sees -- the
// decoding pipeline itself is an external collaborator.
package videocapture

import (
	"bytes"
	"context"
	"image/png"
	"log/slog"
	"sync"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp/codecs"
	"github.com/pion/webrtc/v4"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
)

// FirstFrameTimeout is how long CaptureScreenshotPNG waits for one complete
// frame before failing with kvmerr.ErrNoFrame (spec.md §4.7, §5).
const FirstFrameTimeout = 10 * time.Second

const pliRetryInterval = 1 * time.Second

// Capturer holds the latest inbound video track reference and serves
// screenshot requests against it. At most one track is active at a time;
// a later SetTrack call (following a renegotiation) replaces the former,
// per spec.md §3's VideoFrameCapturer invariant.
type Capturer struct {
	mu    sync.Mutex
	track *webrtc.TrackRemote

	writeRTCP func([]rtcp.Packet) error
	log       *slog.Logger
}

// New builds a Capturer. writeRTCP is used to request keyframes
// (PictureLossIndication) from the appliance encoder; it is typically
// *rtctransport.Transport.WriteRTCP.
func New(writeRTCP func([]rtcp.Packet) error) *Capturer {
	return &Capturer{writeRTCP: writeRTCP, log: logging.For("videocapture")}
}

// SetTrack installs (or replaces) the inbound video track, called from the
// transport's OnTrack callback. It does not block or run caller logic
// itself, per spec.md §9's "never call back into user logic from within
// the event" -- it only stores a value under a mutex.
func (c *Capturer) SetTrack(track *webrtc.TrackRemote) {
	c.mu.Lock()
	c.track = track
	c.mu.Unlock()
}

func (c *Capturer) currentTrack() *webrtc.TrackRemote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.track
}

type captureResult struct {
	png []byte
	err error
}

// CaptureScreenshotPNG reads RTP off the current (or next-attached) video
// track, reassembles and decodes it, and returns the first successfully
// decoded frame as PNG bytes. If no complete frame arrives within
// FirstFrameTimeout -- including when no track is ever attached -- it
// returns kvmerr.ErrNoFrame.
func (c *Capturer) CaptureScreenshotPNG(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, FirstFrameTimeout)
	defer cancel()

	resultCh := make(chan captureResult, 1)
	go c.captureLoop(ctx, resultCh)

	select {
	case r := <-resultCh:
		if r.err != nil {
			return nil, r.err
		}
		return r.png, nil
	case <-ctx.Done():
		return nil, kvmerr.Wrap(kvmerr.ErrNoFrame, "no frame received before deadline")
	}
}

func (c *Capturer) captureLoop(ctx context.Context, resultCh chan<- captureResult) {
	track := c.waitForTrack(ctx)
	if track == nil {
		return // ctx expired; CaptureScreenshotPNG's select reports ErrNoFrame
	}

	dec, err := newDecoder()
	if err != nil {
		resultCh <- captureResult{err: err}
		return
	}
	defer dec.close()

	c.requestKeyframe(track)
	go c.keyframeRetryLoop(ctx, track)

	depacketizer := &codecs.H264Packet{}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pkt, _, err := track.ReadRTP()
		if err != nil {
			c.log.Debug("video track read stopped", logging.KeyError, err)
			return
		}

		nal, err := depacketizer.Unmarshal(pkt.Payload)
		if err != nil || len(nal) == 0 {
			continue
		}

		img, err := dec.decodeNAL(nal)
		if err != nil {
			c.log.Debug("discarding undecodable nal", logging.KeyError, err)
			continue
		}
		if img == nil {
			continue // decoder still accumulating this access unit
		}

		buf := &bytes.Buffer{}
		if err := png.Encode(buf, img); err != nil {
			resultCh <- captureResult{err: err}
			return
		}
		resultCh <- captureResult{png: buf.Bytes()}
		return
	}
}

// waitForTrack polls for a track attachment. A dedicated mailbox channel
// would be preferable but SetTrack may be called before or after this
// loop starts, and the current value is all that matters.
func (c *Capturer) waitForTrack(ctx context.Context) *webrtc.TrackRemote {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	if t := c.currentTrack(); t != nil {
		return t
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if t := c.currentTrack(); t != nil {
				return t
			}
		}
	}
}

func (c *Capturer) requestKeyframe(track *webrtc.TrackRemote) {
	if c.writeRTCP == nil {
		return
	}
	if err := c.writeRTCP([]rtcp.Packet{&rtcp.PictureLossIndication{MediaSSRC: uint32(track.SSRC())}}); err != nil {
		c.log.Debug("pli request failed", logging.KeyError, err)
	}
}

// keyframeRetryLoop re-sends PLI until a frame is produced or ctx expires,
// in case the first request raced the appliance's encoder startup.
func (c *Capturer) keyframeRetryLoop(ctx context.Context, track *webrtc.TrackRemote) {
	ticker := time.NewTicker(pliRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.requestKeyframe(track)
		}
	}
}
