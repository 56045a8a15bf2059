package commands

import (
	"context"
	"encoding/json"
)

// GetActiveExtension returns the currently active appliance extension.
func GetActiveExtension(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getActiveExtension", struct{}{})
}

// SetActiveExtension activates the named extension.
func SetActiveExtension(ctx context.Context, c Caller, extensionID string) (json.RawMessage, error) {
	return call(ctx, c, "setActiveExtension", map[string]string{"extensionId": extensionID})
}

// GetSerialSettings returns the serial console's line configuration.
func GetSerialSettings(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getSerialSettings", struct{}{})
}

// SerialSettings is the line configuration SetSerialSettings uploads.
type SerialSettings struct {
	BaudRate string `json:"baudRate"`
	DataBits string `json:"dataBits"`
	StopBits string `json:"stopBits"`
	Parity   string `json:"parity"`
}

// SetSerialSettings replaces the serial console's line configuration.
func SetSerialSettings(ctx context.Context, c Caller, settings SerialSettings) (json.RawMessage, error) {
	return call(ctx, c, "setSerialSettings", map[string]SerialSettings{"settings": settings})
}
