package keyboardlayout

import (
	"github.com/kvm-remote/kvmrpc/internal/hidcodes"
	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

// MacroStep is one HID keyboard report to send: up to one key, a modifier
// mask, and how long to hold it before releasing.
type MacroStep struct {
	Keys        []byte
	Modifier    byte
	DelayMillis uint64
}

// TextToMacroSteps compiles text into an ordered sequence of MacroStep
// values against the given layout. A character with an AccentKey emits
// the accent step first, then the base key; a character whose base key is
// a DeadKey additionally emits a trailing Space step to commit it on the
// appliance side. Returns kvmerr.ErrUnsupportedCharacter if any rune has
// no entry in the layout.
func TextToMacroSteps(text string, layout *Layout, delayMillis uint64) ([]MacroStep, error) {
	steps := make([]MacroStep, 0, len(text))

	for _, c := range text {
		combo, ok := layout.GetChar(c)
		if !ok {
			return nil, kvmerr.Wrap(kvmerr.ErrUnsupportedCharacter, "character %q not found in layout %s", c, layout.ISOCode)
		}

		if combo.AccentKey != nil {
			accentHID, ok := hidcodes.KeyNameToHID(combo.AccentKey.Key)
			if !ok {
				return nil, kvmerr.Wrap(kvmerr.ErrUnsupportedCharacter, "invalid accent key %q", combo.AccentKey.Key)
			}
			var accentMod byte
			if combo.AccentKey.Shift {
				if m, ok := hidcodes.ModifierNameToMask("ShiftLeft"); ok {
					accentMod |= m
				}
			}
			if combo.AccentKey.AltRight {
				if m, ok := hidcodes.ModifierNameToMask("AltRight"); ok {
					accentMod |= m
				}
			}
			steps = append(steps, MacroStep{Keys: []byte{accentHID}, Modifier: accentMod, DelayMillis: delayMillis})
		}

		keyHID, ok := hidcodes.KeyNameToHID(combo.Key)
		if !ok {
			return nil, kvmerr.Wrap(kvmerr.ErrUnsupportedCharacter, "invalid key %q", combo.Key)
		}
		var modifier byte
		if combo.Shift {
			if m, ok := hidcodes.ModifierNameToMask("ShiftLeft"); ok {
				modifier |= m
			}
		}
		if combo.AltRight {
			if m, ok := hidcodes.ModifierNameToMask("AltRight"); ok {
				modifier |= m
			}
		}
		steps = append(steps, MacroStep{Keys: []byte{keyHID}, Modifier: modifier, DelayMillis: delayMillis})

		if combo.DeadKey {
			spaceHID, _ := hidcodes.KeyNameToHID("Space")
			steps = append(steps, MacroStep{Keys: []byte{spaceHID}, Modifier: 0, DelayMillis: delayMillis})
		}
	}

	return steps, nil
}

// TextToMacroStepsWithLayoutCode resolves isoCode via GetOrDefault before
// compiling.
func TextToMacroStepsWithLayoutCode(text, isoCode string, delayMillis uint64) ([]MacroStep, error) {
	layout := GetOrDefault(isoCode)
	return TextToMacroSteps(text, layout, delayMillis)
}
