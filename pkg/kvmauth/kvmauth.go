// Package kvmauth implements the HTTP login/logout exchange against the
// appliance: a cookie-based session plus an optional bearer-style
// authToken cookie the WebSocket signalling path needs as a Cookie
// header.
package kvmauth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
)

// Credential holds what Login retained from a successful response.
// Cookies is nil and AuthToken is empty for an anonymous session.
type Credential struct {
	Cookies   []*http.Cookie
	AuthToken string
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login authenticates against /auth/login-local. A blank password skips
// the request entirely and returns an anonymous Credential, for
// appliances that run without authentication.
func Login(ctx context.Context, httpClient *http.Client, scheme, host, password string) (*Credential, error) {
	if password == "" {
		return &Credential{}, nil
	}

	body, err := json.Marshal(loginRequest{Password: password})
	if err != nil {
		return nil, err
	}

	url := scheme + "://" + host + "/auth/login-local"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, kvmerr.Wrap(kvmerr.ErrAuthFailed, "login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, kvmerr.Wrap(kvmerr.ErrAuthFailed, "login rejected with status %d: %s", resp.StatusCode, respBody)
	}

	cred := &Credential{Cookies: resp.Cookies()}
	for _, cookie := range cred.Cookies {
		if cookie.Name == "authToken" {
			cred.AuthToken = cookie.Value
		}
	}
	return cred, nil
}

// Logout posts to /auth/logout using the retained cookies. It is
// best-effort: any failure is logged and swallowed, never returned, so
// callers can call it unconditionally during shutdown.
func Logout(ctx context.Context, httpClient *http.Client, scheme, host string, cred *Credential) {
	log := logging.For("kvmauth")
	if cred == nil || len(cred.Cookies) == 0 {
		return
	}

	url := scheme + "://" + host + "/auth/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		log.Warn("build logout request", logging.KeyError, err)
		return
	}
	for _, cookie := range cred.Cookies {
		req.AddCookie(cookie)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Warn("logout request failed", logging.KeyError, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("logout rejected", "status", resp.StatusCode)
	}
}
