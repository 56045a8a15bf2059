// Package hidcodes holds the USB HID usage tables the keyboard layer
// compiles key names down to: a name -> usage-code table (using the
// same "KeyA", "Digit1", "BracketLeft" naming as a browser's
// KeyboardEvent.code) and a modifier name -> bitmask table matching the
// standard HID boot-protocol modifier byte layout.
package hidcodes

// Modifier bitmask, standard USB HID boot-protocol modifier byte:
// bit0 LeftCtrl, bit1 LeftShift, bit2 LeftAlt, bit3 LeftGUI,
// bit4 RightCtrl, bit5 RightShift, bit6 RightAlt, bit7 RightGUI.
const (
	ModControlLeft  = 0x01
	ModShiftLeft    = 0x02
	ModAltLeft      = 0x04
	ModGUILeft      = 0x08
	ModControlRight = 0x10
	ModShiftRight   = 0x20
	ModAltRight     = 0x40
	ModGUIRight     = 0x80
)

var modifierNames = map[string]byte{
	"ControlLeft":  ModControlLeft,
	"ShiftLeft":    ModShiftLeft,
	"AltLeft":      ModAltLeft,
	"MetaLeft":     ModGUILeft,
	"GUILeft":      ModGUILeft,
	"ControlRight": ModControlRight,
	"ShiftRight":   ModShiftRight,
	"AltRight":     ModAltRight,
	"MetaRight":    ModGUIRight,
	"GUIRight":     ModGUIRight,
}

// ModifierNameToMask returns the bitmask for a named modifier key, and
// false if the name is unrecognized.
func ModifierNameToMask(name string) (byte, bool) {
	mask, ok := modifierNames[name]
	return mask, ok
}

// keyNames maps a key name to its USB HID keyboard usage code (usage
// page 0x07), per the standard HID Usage Tables boot-protocol layout.
var keyNames = map[string]byte{
	"KeyA": 0x04, "KeyB": 0x05, "KeyC": 0x06, "KeyD": 0x07,
	"KeyE": 0x08, "KeyF": 0x09, "KeyG": 0x0A, "KeyH": 0x0B,
	"KeyI": 0x0C, "KeyJ": 0x0D, "KeyK": 0x0E, "KeyL": 0x0F,
	"KeyM": 0x10, "KeyN": 0x11, "KeyO": 0x12, "KeyP": 0x13,
	"KeyQ": 0x14, "KeyR": 0x15, "KeyS": 0x16, "KeyT": 0x17,
	"KeyU": 0x18, "KeyV": 0x19, "KeyW": 0x1A, "KeyX": 0x1B,
	"KeyY": 0x1C, "KeyZ": 0x1D,

	"Digit1": 0x1E, "Digit2": 0x1F, "Digit3": 0x20, "Digit4": 0x21,
	"Digit5": 0x22, "Digit6": 0x23, "Digit7": 0x24, "Digit8": 0x25,
	"Digit9": 0x26, "Digit0": 0x27,

	"Enter":     0x28,
	"Escape":    0x29,
	"Backspace": 0x2A,
	"Tab":       0x2B,
	"Space":     0x2C,

	"Minus":        0x2D,
	"Equal":        0x2E,
	"BracketLeft":  0x2F,
	"BracketRight": 0x30,
	"Backslash":    0x31,
	"Semicolon":    0x33,
	"Quote":        0x34,
	"Backquote":    0x35,
	"Comma":        0x36,
	"Period":       0x37,
	"Slash":        0x38,
	"CapsLock":     0x39,

	"F1": 0x3A, "F2": 0x3B, "F3": 0x3C, "F4": 0x3D,
	"F5": 0x3E, "F6": 0x3F, "F7": 0x40, "F8": 0x41,
	"F9": 0x42, "F10": 0x43, "F11": 0x44, "F12": 0x45,

	"PrintScreen": 0x46,
	"ScrollLock":  0x47,
	"Pause":       0x48,
	"Insert":      0x49,
	"Home":        0x4A,
	"PageUp":      0x4B,
	"Delete":      0x4C,
	"End":         0x4D,
	"PageDown":    0x4E,
	"ArrowRight":  0x4F,
	"ArrowLeft":   0x50,
	"ArrowDown":   0x51,
	"ArrowUp":     0x52,

	"IntlBackslash": 0x64,

	"ControlLeft":  0xE0,
	"ShiftLeft":    0xE1,
	"AltLeft":      0xE2,
	"MetaLeft":     0xE3,
	"ControlRight": 0xE4,
	"ShiftRight":   0xE5,
	"AltRight":     0xE6,
	"MetaRight":    0xE7,
}

// KeyNameToHID returns the USB HID usage code for a named key, and false
// if the name is unrecognized.
func KeyNameToHID(name string) (byte, bool) {
	code, ok := keyNames[name]
	return code, ok
}
