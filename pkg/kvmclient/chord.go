package kvmclient

import (
	"context"
	"time"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

// KeyCombo is one step of a chord sequence passed to SendKeyCombinations.
// It mirrors spec.md §3's superset definition (Open Question (b)): at most
// six simultaneous key codes, a modifier bitmask, and the stickiness/hold/
// release flags that control how the chord interacts with the ones before
// and after it.
type KeyCombo struct {
	Modifier byte
	Keys     []byte

	// HoldKeys and HoldModifiers mark this combo's keys/modifier as
	// sticky: they persist into subsequent combos instead of being
	// dropped when Hold elapses.
	HoldKeys      bool
	HoldModifiers bool

	// HoldMillis, if non-zero, sleeps this long after the initial report
	// then emits an updated report dropping non-sticky keys/modifiers.
	HoldMillis uint64

	// WaitMillis sleeps this long after the combo's processing completes,
	// before the next combo (or return, for the last one).
	WaitMillis uint64

	// InstantRelease subtracts this combo's keys (and, if its modifier
	// isn't sticky, the modifier) immediately after the initial report.
	InstantRelease bool

	// ClearKeys resets the running state to empty, emits an empty report
	// and sleeps WaitMillis; this combo's own Modifier, Keys and other
	// flags are not applied.
	ClearKeys bool
}

const maxChordKeys = 6

// SendKeyCombinations (send_key_combinations) runs an ordered sequence of
// KeyCombo values against running modifier/key state, per spec.md §4.6.
// An empty sequence issues no reports.
func (s *Session) SendKeyCombinations(ctx context.Context, combos []KeyCombo) error {
	var activeModifiers byte
	activeKeys := make(map[byte]bool)

	emit := func() error {
		keys := make([]byte, 0, len(activeKeys))
		for k := range activeKeys {
			keys = append(keys, k)
		}
		if len(keys) > maxChordKeys {
			return kvmerr.Wrap(kvmerr.ErrConfigInvalid, "chord state exceeds %d simultaneous keys", maxChordKeys)
		}
		return s.KeyboardReport(ctx, activeModifiers, keys)
	}

	for _, combo := range combos {
		if combo.ClearKeys {
			activeKeys = make(map[byte]bool)
			activeModifiers = 0
			if err := emit(); err != nil {
				return err
			}
			if err := sleep(ctx, time.Duration(combo.WaitMillis)*time.Millisecond); err != nil {
				return err
			}
			continue
		}

		if len(combo.Keys) > maxChordKeys {
			return kvmerr.Wrap(kvmerr.ErrConfigInvalid, "combo has %d keys, max is %d", len(combo.Keys), maxChordKeys)
		}

		activeModifiers |= combo.Modifier
		for _, k := range combo.Keys {
			activeKeys[k] = true
		}

		if err := emit(); err != nil {
			return err
		}

		if combo.HoldMillis > 0 {
			if err := sleep(ctx, time.Duration(combo.HoldMillis)*time.Millisecond); err != nil {
				return err
			}
			if !combo.HoldKeys {
				for _, k := range combo.Keys {
					delete(activeKeys, k)
				}
			}
			if !combo.HoldModifiers {
				activeModifiers &^= combo.Modifier
			}
			if err := emit(); err != nil {
				return err
			}
		}

		if combo.InstantRelease {
			for _, k := range combo.Keys {
				delete(activeKeys, k)
			}
			if !combo.HoldModifiers {
				activeModifiers &^= combo.Modifier
			}
			if err := emit(); err != nil {
				return err
			}
		}

		if err := sleep(ctx, time.Duration(combo.WaitMillis)*time.Millisecond); err != nil {
			return err
		}
	}

	return nil
}
