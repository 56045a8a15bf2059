package commands

import (
	"context"
	"encoding/json"
)

// GetATXState returns the appliance's ATX power state.
func GetATXState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getATXState", struct{}{})
}

// SetATXPowerAction issues an ATX power action ("power", "powerlong", "reset", ...).
func SetATXPowerAction(ctx context.Context, c Caller, action string) (json.RawMessage, error) {
	return call(ctx, c, "setATXPowerAction", map[string]string{"action": action})
}

// GetDCPowerState returns the DC output power state.
func GetDCPowerState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getDCPowerState", struct{}{})
}

// SetDCPowerState turns the DC output on or off.
func SetDCPowerState(ctx context.Context, c Caller, enabled bool) (json.RawMessage, error) {
	return call(ctx, c, "setDCPowerState", map[string]bool{"enabled": enabled})
}

// SetDCRestoreState sets the behavior after power loss.
func SetDCRestoreState(ctx context.Context, c Caller, state uint64) (json.RawMessage, error) {
	return call(ctx, c, "setDCRestoreState", map[string]uint64{"state": state})
}
