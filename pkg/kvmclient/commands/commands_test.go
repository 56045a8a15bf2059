package commands

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCaller captures the last method/params it was asked to call and
// returns a preconfigured result, standing in for *internal/rpc.Client.
type recordingCaller struct {
	method string
	params any

	result json.RawMessage
	err    error
}

func (c *recordingCaller) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	c.method = method
	c.params = params
	return c.result, c.err
}

func TestPingCallsMethodWithNoParams(t *testing.T) {
	c := &recordingCaller{result: json.RawMessage(`null`)}
	err := Ping(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "ping", c.method)
	assert.Equal(t, struct{}{}, c.params)
}

func TestGetDeviceIDDecodesStringResult(t *testing.T) {
	c := &recordingCaller{result: json.RawMessage(`"abc-123"`)}
	id, err := GetDeviceID(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, "getDeviceID", c.method)
}

func TestGetDeviceIDPropagatesCallError(t *testing.T) {
	c := &recordingCaller{err: errors.New("channel closed")}
	_, err := GetDeviceID(context.Background(), c)
	assert.EqualError(t, err, "channel closed")
}

func TestSetATXPowerActionSendsActionParam(t *testing.T) {
	c := &recordingCaller{result: json.RawMessage(`{}`)}
	_, err := SetATXPowerAction(context.Background(), c, "powerlong")
	require.NoError(t, err)
	assert.Equal(t, "setATXPowerAction", c.method)
	assert.Equal(t, map[string]string{"action": "powerlong"}, c.params)
}

func TestSetDCPowerStateSendsEnabledParam(t *testing.T) {
	c := &recordingCaller{result: json.RawMessage(`{}`)}
	_, err := SetDCPowerState(context.Background(), c, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"enabled": true}, c.params)
}

func TestSetDisplayRotationWrapsParamsUnderParamsKey(t *testing.T) {
	c := &recordingCaller{result: json.RawMessage(`{}`)}
	_, err := SetDisplayRotation(context.Background(), c, "90")
	require.NoError(t, err)
	assert.Equal(t, "setDisplayRotation", c.method)
	assert.Equal(t, map[string]any{"params": map[string]string{"rotation": "90"}}, c.params)
}

func TestSetTLSStateWrapsFieldsUnderStateKey(t *testing.T) {
	c := &recordingCaller{result: json.RawMessage(`{}`)}
	_, err := SetTLSState(context.Background(), c, TLSState{Mode: "self-signed"})
	require.NoError(t, err)
	assert.Equal(t, "setTLSState", c.method)
	assert.Equal(t, map[string]TLSState{"state": {Mode: "self-signed"}}, c.params)
}
