// Package keyboardlayout holds per-locale character-to-keypress tables and
// compiles arbitrary text into ordered HID macro steps.
package keyboardlayout

// KeyCombo describes how to type a single character: a base key name, the
// modifiers that must be held with it, whether the character requires a
// dead-key sequence (the key itself produces no visible output until a
// following key completes it), and an optional accent key that must be
// pressed and released before the base key.
type KeyCombo struct {
	Key       string
	Shift     bool
	AltRight  bool
	DeadKey   bool
	AccentKey *KeyCombo
}

// NewKeyCombo returns a KeyCombo for the named key with no modifiers set.
func NewKeyCombo(key string) KeyCombo {
	return KeyCombo{Key: key}
}

// WithShift marks the combo as requiring the left shift modifier.
func (k KeyCombo) WithShift() KeyCombo {
	k.Shift = true
	return k
}

// WithAltRight marks the combo as requiring the right alt (AltGr) modifier.
func (k KeyCombo) WithAltRight() KeyCombo {
	k.AltRight = true
	return k
}

// WithDeadKey marks the base key as a dead key: an extra space keystroke
// must follow to commit the character on the appliance side.
func (k KeyCombo) WithDeadKey() KeyCombo {
	k.DeadKey = true
	return k
}

// WithAccentKey attaches an accent combo that must be struck immediately
// before this one.
func (k KeyCombo) WithAccentKey(accent KeyCombo) KeyCombo {
	a := accent
	k.AccentKey = &a
	return k
}

// Layout maps characters to the KeyCombo that types them on one locale's
// physical keyboard.
type Layout struct {
	ISOCode string
	Name    string
	Chars   map[rune]KeyCombo
}

// GetChar looks up the KeyCombo for a rune in this layout.
func (l *Layout) GetChar(c rune) (KeyCombo, bool) {
	combo, ok := l.Chars[c]
	return combo, ok
}
