package kvmclient

import (
	"context"
	"time"

	"github.com/kvm-remote/kvmrpc/internal/hidcodes"
	"github.com/kvm-remote/kvmrpc/internal/keyboardlayout"
	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

const (
	reportSettleDelay  = 10 * time.Millisecond
	reportReleaseDelay = 10 * time.Millisecond
)

type keyboardReportParams struct {
	Modifier uint64  `json:"modifier"`
	Keys     []uint8 `json:"keys"`
}

// KeyboardReport sends one raw HID keyboard state to the appliance: the
// modifier bitmask plus up to six simultaneously held key codes. Every
// other keyboard primitive in this file is built from repeated calls to
// this one RPC (spec.md §4.6).
func (s *Session) KeyboardReport(ctx context.Context, modifier byte, keys []byte) error {
	client := s.RPC()
	if client == nil {
		return kvmerr.Wrap(kvmerr.ErrChannelNotOpen, "cannot send keyboard report before connect")
	}
	_, err := client.Call(ctx, "keyboardReport", keyboardReportParams{Modifier: uint64(modifier), Keys: keys})
	return err
}

// pressRelease sends one key down, sleeps delay, releases, and sleeps the
// fixed inter-report settle delay -- the two-report rhythm every text/key
// primitive in this file shares.
func (s *Session) pressRelease(ctx context.Context, modifier byte, key byte, delay time.Duration) error {
	if err := s.KeyboardReport(ctx, modifier, []byte{key}); err != nil {
		return err
	}
	if err := sleep(ctx, delay); err != nil {
		return err
	}
	if err := s.KeyboardReport(ctx, 0, nil); err != nil {
		return err
	}
	return sleep(ctx, reportReleaseDelay)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// asciiTable is the built-in ASCII-only code-point -> (modifier, keycode)
// table used by SendText. Per spec.md §9 Open Question (a), the source
// repository carries two divergent ASCII tables; this one is the larger,
// punctuation-complete table and is authoritative.
var asciiTable = buildASCIITable()

type asciiEntry struct {
	modifier byte
	key      string
}

func buildASCIITable() map[rune]asciiEntry {
	t := make(map[rune]asciiEntry, 128)
	for c := 'a'; c <= 'z'; c++ {
		key := "Key" + string(c-'a'+'A')
		t[c] = asciiEntry{key: key}
		t[c-'a'+'A'] = asciiEntry{modifier: hidcodes.ModShiftLeft, key: key}
	}
	for c := '1'; c <= '9'; c++ {
		t[c] = asciiEntry{key: "Digit" + string(c)}
	}
	t['0'] = asciiEntry{key: "Digit0"}
	shiftedDigits := map[rune]string{
		')': "Digit0", '!': "Digit1", '@': "Digit2", '#': "Digit3", '$': "Digit4",
		'%': "Digit5", '^': "Digit6", '&': "Digit7", '*': "Digit8", '(': "Digit9",
	}
	for c, key := range shiftedDigits {
		t[c] = asciiEntry{modifier: hidcodes.ModShiftLeft, key: key}
	}

	plain := map[rune]string{
		' ': "Space", '\n': "Enter", '\t': "Tab",
		'-': "Minus", '=': "Equal", '[': "BracketLeft", ']': "BracketRight",
		'\\': "Backslash", ';': "Semicolon", '\'': "Quote", '`': "Backquote",
		',': "Comma", '.': "Period", '/': "Slash",
	}
	for c, key := range plain {
		t[c] = asciiEntry{key: key}
	}

	shiftedPunct := map[rune]string{
		'_': "Minus", '+': "Equal", '{': "BracketLeft", '}': "BracketRight",
		'|': "Backslash", ':': "Semicolon", '"': "Quote", '~': "Backquote",
		'<': "Comma", '>': "Period", '?': "Slash",
	}
	for c, key := range shiftedPunct {
		t[c] = asciiEntry{modifier: hidcodes.ModShiftLeft, key: key}
	}

	return t
}

// SendText (rpc_sendtext) types ASCII text using the built-in code-point
// table. Unsupported code points are logged and skipped, not fatal -- the
// layout-aware SendTextWithLayout is the variant that fails hard on an
// unknown character.
func (s *Session) SendText(ctx context.Context, text string) error {
	log := s.log
	for _, c := range text {
		entry, ok := asciiTable[c]
		if !ok {
			log.Warn("sendtext: unsupported ascii character, skipping", "char", string(c))
			continue
		}
		hid, ok := hidcodes.KeyNameToHID(entry.key)
		if !ok {
			log.Warn("sendtext: key name has no hid mapping, skipping", "key", entry.key)
			continue
		}
		if err := s.pressRelease(ctx, entry.modifier, hid, reportSettleDelay); err != nil {
			return err
		}
	}
	return nil
}

// SendTextWithLayout (send_text_with_layout) types text using a named
// keyboard layout: accent-prefixed characters send the accent key first,
// dead-key characters send a trailing Space to commit, and an unmapped
// code point fails the entire call with ErrUnsupportedCharacter rather
// than skipping it.
func (s *Session) SendTextWithLayout(ctx context.Context, text, isoCode string, delayMillis uint64) error {
	layout := keyboardlayout.GetOrDefault(isoCode)
	delay := time.Duration(delayMillis) * time.Millisecond

	for _, c := range text {
		combo, ok := layout.GetChar(c)
		if !ok {
			return kvmerr.Wrap(kvmerr.ErrUnsupportedCharacter, "character %q not found in layout %s", c, layout.ISOCode)
		}

		if combo.AccentKey != nil {
			if err := s.sendCombo(ctx, *combo.AccentKey, delay); err != nil {
				return err
			}
		}
		if err := s.sendCombo(ctx, combo, delay); err != nil {
			return err
		}
		if combo.DeadKey {
			spaceHID, _ := hidcodes.KeyNameToHID("Space")
			if err := s.pressRelease(ctx, 0, spaceHID, delay); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) sendCombo(ctx context.Context, combo keyboardlayout.KeyCombo, delay time.Duration) error {
	hid, ok := hidcodes.KeyNameToHID(combo.Key)
	if !ok {
		return kvmerr.Wrap(kvmerr.ErrUnsupportedCharacter, "key %q has no hid mapping", combo.Key)
	}
	var modifier byte
	if combo.Shift {
		modifier |= hidcodes.ModShiftLeft
	}
	if combo.AltRight {
		modifier |= hidcodes.ModAltRight
	}
	return s.pressRelease(ctx, modifier, hid, delay)
}
