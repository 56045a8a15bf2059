package commands

import (
	"context"
	"encoding/json"
)

// GetEDID returns the appliance's current EDID blob.
func GetEDID(ctx context.Context, c Caller) (string, error) {
	return decodeString(call(ctx, c, "getEDID", struct{}{}))
}

// SetEDID uploads a new EDID blob.
func SetEDID(ctx context.Context, c Caller, edid string) (json.RawMessage, error) {
	return call(ctx, c, "setEDID", map[string]string{"edid": edid})
}

// Reboot reboots the appliance, forcibly if force is set.
func Reboot(ctx context.Context, c Caller, force bool) (json.RawMessage, error) {
	return call(ctx, c, "reboot", map[string]bool{"force": force})
}

// GetLocalVersion returns the appliance's installed firmware version.
func GetLocalVersion(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getLocalVersion", struct{}{})
}

// GetUpdateStatus returns the current update-check status.
func GetUpdateStatus(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getUpdateStatus", struct{}{})
}

// TryUpdate triggers an update attempt.
func TryUpdate(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "tryUpdate", struct{}{})
}

// GetAutoUpdateState reports whether automatic updates are enabled.
func GetAutoUpdateState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getAutoUpdateState", struct{}{})
}

// SetAutoUpdateState toggles automatic updates.
func SetAutoUpdateState(ctx context.Context, c Caller, enabled bool) (json.RawMessage, error) {
	return call(ctx, c, "setAutoUpdateState", map[string]bool{"enabled": enabled})
}

// GetTimezones lists the timezones the appliance accepts.
func GetTimezones(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getTimezones", struct{}{})
}
