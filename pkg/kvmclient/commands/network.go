package commands

import (
	"context"
	"encoding/json"
)

// GetNetworkSettings returns the appliance's configured network settings.
func GetNetworkSettings(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getNetworkSettings", struct{}{})
}

// SetNetworkSettings replaces the appliance's network settings. settings is
// passed through verbatim as the appliance-defined schema.
func SetNetworkSettings(ctx context.Context, c Caller, settings any) (json.RawMessage, error) {
	return call(ctx, c, "setNetworkSettings", map[string]any{"settings": settings})
}

// GetNetworkState returns the appliance's current network link state.
func GetNetworkState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getNetworkState", struct{}{})
}

// RenewDHCPLease requests a fresh DHCP lease.
func RenewDHCPLease(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "renewDHCPLease", struct{}{})
}
