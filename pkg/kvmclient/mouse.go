package kvmclient

import (
	"context"
	"time"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

// Mouse button bits, matching the appliance's absMouseReport/relMouseReport
// buttons field.
const (
	MouseButtonLeft   byte = 0x01
	MouseButtonRight  byte = 0x02
	MouseButtonMiddle byte = 0x04
)

const (
	clickHoldDelay       = 100 * time.Millisecond
	doubleClickGap       = 150 * time.Millisecond
	dragStepDelay        = 50 * time.Millisecond
	dragInterpolateSteps = 100
)

type absMouseParams struct {
	X       int32 `json:"x"`
	Y       int32 `json:"y"`
	Buttons byte  `json:"buttons"`
}

type relMouseParams struct {
	DX      int32 `json:"dx"`
	DY      int32 `json:"dy"`
	Buttons byte  `json:"buttons"`
}

type wheelParams struct {
	Delta int32 `json:"delta"`
}

// AbsMouseReport sends one absolute-position mouse HID report.
func (s *Session) AbsMouseReport(ctx context.Context, x, y int32, buttons byte) error {
	client := s.RPC()
	if client == nil {
		return kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot send mouse report before connect")
	}
	_, err := client.Call(ctx, "absMouseReport", absMouseParams{X: x, Y: y, Buttons: buttons})
	return err
}

// RelMouseReport sends one relative-motion mouse HID report.
func (s *Session) RelMouseReport(ctx context.Context, dx, dy int32, buttons byte) error {
	client := s.RPC()
	if client == nil {
		return kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot send mouse report before connect")
	}
	_, err := client.Call(ctx, "relMouseReport", relMouseParams{DX: dx, DY: dy, Buttons: buttons})
	return err
}

// WheelReport sends one scroll-wheel HID report.
func (s *Session) WheelReport(ctx context.Context, delta int32) error {
	client := s.RPC()
	if client == nil {
		return kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot send wheel report before connect")
	}
	_, err := client.Call(ctx, "wheelReport", wheelParams{Delta: delta})
	return err
}

// Click presses and releases a single mouse button at (x, y), holding it
// down for clickHoldDelay per spec.md §4.6.
func (s *Session) Click(ctx context.Context, x, y int32, button byte) error {
	if err := s.AbsMouseReport(ctx, x, y, button); err != nil {
		return err
	}
	if err := sleep(ctx, clickHoldDelay); err != nil {
		return err
	}
	return s.AbsMouseReport(ctx, x, y, 0)
}

// DoubleClick is two left clicks at (x, y) separated by doubleClickGap.
func (s *Session) DoubleClick(ctx context.Context, x, y int32) error {
	if err := s.Click(ctx, x, y, MouseButtonLeft); err != nil {
		return err
	}
	if err := sleep(ctx, doubleClickGap); err != nil {
		return err
	}
	return s.Click(ctx, x, y, MouseButtonLeft)
}

// DragToCentre moves to (fromX, fromY), presses the left button, interpolates
// dragInterpolateSteps intermediate absolute positions toward (960, 540)
// with dragStepDelay spacing, and releases at the centre, per spec.md §4.6.
func (s *Session) DragToCentre(ctx context.Context, fromX, fromY int32) error {
	const centreX, centreY int32 = 960, 540

	if err := s.AbsMouseReport(ctx, fromX, fromY, 0); err != nil {
		return err
	}
	if err := s.AbsMouseReport(ctx, fromX, fromY, MouseButtonLeft); err != nil {
		return err
	}

	for i := 1; i <= dragInterpolateSteps; i++ {
		frac := float64(i) / float64(dragInterpolateSteps)
		x := fromX + int32(float64(centreX-fromX)*frac)
		y := fromY + int32(float64(centreY-fromY)*frac)
		if err := s.AbsMouseReport(ctx, x, y, MouseButtonLeft); err != nil {
			return err
		}
		if err := sleep(ctx, dragStepDelay); err != nil {
			return err
		}
	}

	return s.AbsMouseReport(ctx, centreX, centreY, 0)
}
