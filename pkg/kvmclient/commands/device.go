package commands

import "context"

// Ping issues the appliance's liveness check.
func Ping(ctx context.Context, c Caller) error {
	_, err := call(ctx, c, "ping", struct{}{})
	return err
}

// GetDeviceID returns the appliance's device identifier.
func GetDeviceID(ctx context.Context, c Caller) (string, error) {
	return decodeString(call(ctx, c, "getDeviceID", struct{}{}))
}
