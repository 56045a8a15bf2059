package videocapture

import (
	"fmt"
	"image"

	openh264 "github.com/y9o/go-openh264"
)

// decoder wraps the external H.264 software decoder this module depends on
// behind the narrow surface captureLoop needs, so the rest of the package
// is insulated from that library's exact call shape.
type decoder struct {
	dec *openh264.Decoder
}

func newDecoder() (*decoder, error) {
	d, err := openh264.NewDecoder()
	if err != nil {
		return nil, fmt.Errorf("init h264 decoder: %w", err)
	}
	return &decoder{dec: d}, nil
}

// decodeNAL feeds one Annex-B NAL unit (as produced by the RTP
// depacketizer) to the decoder. It returns a decoded frame once the
// decoder has accumulated a complete access unit, and (nil, nil) while
// still waiting on more NALs (SPS/PPS/non-final slice data).
func (d *decoder) decodeNAL(nal []byte) (image.Image, error) {
	return d.dec.DecodeFrame(nal)
}

func (d *decoder) close() {
	d.dec.Close()
}
