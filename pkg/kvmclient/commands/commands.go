// Package commands implements the peripheral JSON-RPC namespace spec.md §6
// names: device info, system, power, network, storage/virtual-media, USB,
// jiggler, video status, Wake-on-LAN, cloud/TLS, dev-mode toggles, hardware,
// and extensions. Every function here is a thin typed wrapper over one
// Caller.Call -- no retry, no caching, pass-through glue over the
// appliance's own schema, per spec.md §1.
package commands

import (
	"context"
	"encoding/json"
)

// Caller is the minimal surface every wrapper in this package needs: it is
// satisfied by *internal/rpc.Client (via *kvmclient.Session.RPC()) and by
// any test double standing in for one.
type Caller interface {
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

func call(ctx context.Context, c Caller, method string, params any) (json.RawMessage, error) {
	return c.Call(ctx, method, params)
}

func decodeString(raw json.RawMessage, err error) (string, error) {
	if err != nil {
		return "", err
	}
	var s string
	if unmarshalErr := json.Unmarshal(raw, &s); unmarshalErr != nil {
		return "", unmarshalErr
	}
	return s, nil
}

