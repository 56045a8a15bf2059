package commands

import (
	"context"
	"encoding/json"
)

// GetVideoState returns the appliance's current video pipeline state.
func GetVideoState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getVideoState", struct{}{})
}

// GetStreamQualityFactor returns the appliance's current encode quality factor.
func GetStreamQualityFactor(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getStreamQualityFactor", struct{}{})
}

// GetVideoLogStatus returns whether verbose video pipeline logging is enabled.
func GetVideoLogStatus(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getVideoLogStatus", struct{}{})
}
