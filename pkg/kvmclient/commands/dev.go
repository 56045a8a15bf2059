package commands

import (
	"context"
	"encoding/json"
)

// GetDevModeState reports whether developer mode is enabled.
func GetDevModeState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getDevModeState", struct{}{})
}

// SetDevModeState toggles developer mode.
func SetDevModeState(ctx context.Context, c Caller, enabled bool) (json.RawMessage, error) {
	return call(ctx, c, "setDevModeState", map[string]bool{"enabled": enabled})
}

// GetSSHKeyState returns the currently authorized SSH key, if any.
func GetSSHKeyState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getSSHKeyState", struct{}{})
}

// SetSSHKeyState authorizes sshKey for SSH access.
func SetSSHKeyState(ctx context.Context, c Caller, sshKey string) (json.RawMessage, error) {
	return call(ctx, c, "setSSHKeyState", map[string]string{"sshKey": sshKey})
}

// GetDevChannelState reports whether the appliance tracks the dev update channel.
func GetDevChannelState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getDevChannelState", struct{}{})
}

// SetDevChannelState toggles the dev update channel.
func SetDevChannelState(ctx context.Context, c Caller, enabled bool) (json.RawMessage, error) {
	return call(ctx, c, "setDevChannelState", map[string]bool{"enabled": enabled})
}

// GetLocalLoopbackOnly reports whether the web UI is restricted to loopback.
func GetLocalLoopbackOnly(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getLocalLoopbackOnly", struct{}{})
}

// SetLocalLoopbackOnly restricts (or unrestricts) the web UI to loopback.
func SetLocalLoopbackOnly(ctx context.Context, c Caller, enabled bool) (json.RawMessage, error) {
	return call(ctx, c, "setLocalLoopbackOnly", map[string]bool{"enabled": enabled})
}

// ResetConfig resets the appliance's configuration to factory defaults.
func ResetConfig(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "resetConfig", struct{}{})
}
