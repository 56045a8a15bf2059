package commands

import (
	"context"
	"encoding/json"
)

// GetCloudState returns the appliance's remote-management enrollment state.
func GetCloudState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getCloudState", struct{}{})
}

// SetCloudUrl points the appliance at a different cloud API/app URL pair.
func SetCloudUrl(ctx context.Context, c Caller, apiURL, appURL string) (json.RawMessage, error) {
	return call(ctx, c, "setCloudUrl", map[string]string{"apiUrl": apiURL, "appUrl": appURL})
}

// GetTLSState returns the appliance's TLS configuration.
func GetTLSState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getTLSState", struct{}{})
}

// TLSState is the payload SetTLSState wraps under the "state" key, mirroring
// the appliance's schema for its own TLS configuration object.
type TLSState struct {
	Mode        string `json:"mode"`
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"privateKey"`
}

// SetTLSState uploads a new TLS mode/certificate/key triple.
func SetTLSState(ctx context.Context, c Caller, state TLSState) (json.RawMessage, error) {
	return call(ctx, c, "setTLSState", map[string]TLSState{"state": state})
}

// DeregisterDevice removes the appliance from its cloud account.
func DeregisterDevice(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "deregisterDevice", struct{}{})
}
