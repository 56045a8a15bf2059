package commands

import (
	"context"
	"encoding/json"
)

// GetWakeOnLanDevices lists the configured Wake-on-LAN targets.
func GetWakeOnLanDevices(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getWakeOnLanDevices", struct{}{})
}

// SetWakeOnLanDevices replaces the configured Wake-on-LAN targets.
func SetWakeOnLanDevices(ctx context.Context, c Caller, devices any) (json.RawMessage, error) {
	return call(ctx, c, "setWakeOnLanDevices", devices)
}

// SendWOLMagicPacket sends a magic packet to the given MAC address.
func SendWOLMagicPacket(ctx context.Context, c Caller, macAddress string) (json.RawMessage, error) {
	return call(ctx, c, "sendWOLMagicPacket", map[string]string{"macAddress": macAddress})
}
