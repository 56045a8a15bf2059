package commands

import (
	"context"
	"encoding/json"
)

// SetDisplayRotation sets the on-appliance display's rotation ("0", "90",
// "180", "270").
func SetDisplayRotation(ctx context.Context, c Caller, rotation string) (json.RawMessage, error) {
	return call(ctx, c, "setDisplayRotation", map[string]any{"params": map[string]string{"rotation": rotation}})
}

// GetDisplayRotation returns the on-appliance display's current rotation.
func GetDisplayRotation(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getDisplayRotation", struct{}{})
}

// SetBacklightSettings configures the on-appliance display's backlight
// timing: maxBrightness is the peak level, dimAfter/offAfter are seconds of
// inactivity before dimming/turning off.
func SetBacklightSettings(ctx context.Context, c Caller, maxBrightness, dimAfter, offAfter int) (json.RawMessage, error) {
	params := map[string]int{
		"max_brightness": maxBrightness,
		"dim_after":      dimAfter,
		"off_after":      offAfter,
	}
	return call(ctx, c, "setBacklightSettings", map[string]any{"params": params})
}

// GetBacklightSettings returns the on-appliance display's backlight timing.
func GetBacklightSettings(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getBacklightSettings", struct{}{})
}
