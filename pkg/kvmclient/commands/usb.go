package commands

import (
	"context"
	"encoding/json"
)

// GetUsbConfig returns the appliance's USB gadget configuration.
func GetUsbConfig(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getUsbConfig", struct{}{})
}

// SetUsbConfig replaces the USB gadget configuration.
func SetUsbConfig(ctx context.Context, c Caller, usbConfig any) (json.RawMessage, error) {
	return call(ctx, c, "setUsbConfig", map[string]any{"usbConfig": usbConfig})
}

// GetUsbDevices lists the emulated USB devices.
func GetUsbDevices(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getUsbDevices", struct{}{})
}

// SetUsbDevices replaces the emulated USB device set.
func SetUsbDevices(ctx context.Context, c Caller, devices any) (json.RawMessage, error) {
	return call(ctx, c, "setUsbDevices", map[string]any{"devices": devices})
}

// GetUsbEmulationState reports whether USB emulation is enabled.
func GetUsbEmulationState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getUsbEmulationState", struct{}{})
}

// SetUsbEmulationState toggles USB emulation.
func SetUsbEmulationState(ctx context.Context, c Caller, enabled bool) (json.RawMessage, error) {
	return call(ctx, c, "setUsbEmulationState", map[string]bool{"enabled": enabled})
}
