package commands

import (
	"context"
	"encoding/json"
)

// GetJigglerState reports whether the mouse jiggler is active.
func GetJigglerState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getJigglerState", struct{}{})
}

// SetJigglerState toggles the mouse jiggler.
func SetJigglerState(ctx context.Context, c Caller, enabled bool) (json.RawMessage, error) {
	return call(ctx, c, "setJigglerState", map[string]bool{"enabled": enabled})
}

// GetJigglerConfig returns the jiggler's timing configuration.
func GetJigglerConfig(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getJigglerConfig", struct{}{})
}

// SetJigglerConfig replaces the jiggler's timing configuration.
func SetJigglerConfig(ctx context.Context, c Caller, jigglerConfig any) (json.RawMessage, error) {
	return call(ctx, c, "setJigglerConfig", map[string]any{"jigglerConfig": jigglerConfig})
}
