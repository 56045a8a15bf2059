package kvmauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
)

func TestLoginBlankPasswordSkipsRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cred, err := Login(context.Background(), server.Client(), "http", strings.TrimPrefix(server.URL, "http://"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("expected no request for blank password")
	}
	if cred.AuthToken != "" {
		t.Fatal("expected anonymous credential to carry no auth token")
	}
}

func TestLoginCapturesAuthTokenCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		http.SetCookie(w, &http.Cookie{Name: "authToken", Value: "tok-123"})
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cred, err := Login(context.Background(), server.Client(), "http", strings.TrimPrefix(server.URL, "http://"), "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.AuthToken != "tok-123" {
		t.Fatalf("expected authToken tok-123, got %q", cred.AuthToken)
	}
	if len(cred.Cookies) != 2 {
		t.Fatalf("expected 2 cookies retained, got %d", len(cred.Cookies))
	}
}

func TestLoginNon2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad password", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := Login(context.Background(), server.Client(), "http", strings.TrimPrefix(server.URL, "http://"), "wrong")
	if !errors.Is(err, kvmerr.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestLogoutSwallowsErrors(t *testing.T) {
	// No server listening at all: Logout must not panic or return an error
	// (it has no return value), regardless of the dial failure.
	cred := &Credential{Cookies: []*http.Cookie{{Name: "session", Value: "abc"}}}
	Logout(context.Background(), http.DefaultClient, "http", "127.0.0.1:1", cred)
}

func TestLogoutNoopWithoutCookies(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	Logout(context.Background(), server.Client(), "http", strings.TrimPrefix(server.URL, "http://"), &Credential{})
	if called {
		t.Fatal("expected no request when there is no retained cookie")
	}
}
