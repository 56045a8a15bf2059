package commands

import (
	"context"
	"encoding/json"
)

// GetKeyboardLayout returns the appliance-side layout identifier currently
// applied to its own key-event interpretation (distinct from the
// client-local layout tables in internal/keyboardlayout, which drive
// Session.SendTextWithLayout instead of any appliance state).
func GetKeyboardLayout(ctx context.Context, c Caller) (string, error) {
	return decodeString(call(ctx, c, "getKeyboardLayout", struct{}{}))
}

// SetKeyboardLayout replaces the appliance-side layout identifier.
func SetKeyboardLayout(ctx context.Context, c Caller, layout string) (json.RawMessage, error) {
	return call(ctx, c, "setKeyboardLayout", map[string]string{"layout": layout})
}

// GetKeyboardLedState reports the appliance's Num/Caps/Scroll-lock LED state.
func GetKeyboardLedState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getKeyboardLedState", struct{}{})
}

// GetKeyDownState reports the set of HID key codes the appliance currently
// considers held down.
func GetKeyDownState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getKeyDownState", struct{}{})
}
