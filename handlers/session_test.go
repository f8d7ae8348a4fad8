package handlers

import (
	"testing"

	"github.com/umakantv/go-utils/cache"
)

func newTestSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	c, err := cache.New(cache.Config{Type: "memory"})
	if err != nil {
		t.Fatalf("init cache: %v", err)
	}
	return NewSessionStore(c, "secreto")
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestSessionStore(t)

	token := store.Create(7)
	userID, ok := store.UserID(token)
	if !ok {
		t.Fatal("freshly created session did not resolve")
	}
	if userID != 7 {
		t.Fatalf("expected user 7, got %d", userID)
	}
}

func TestTamperedCookieIsRejected(t *testing.T) {
	store := newTestSessionStore(t)
	token := store.Create(7)

	tampered := []byte(token)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	if _, ok := store.UserID(string(tampered)); ok {
		t.Fatal("tampered token must not verify")
	}

	if _, ok := store.UserID("garbage"); ok {
		t.Fatal("malformed token must not verify")
	}

	// A token signed with a different secret is worthless here.
	other := newTestSessionStore(t)
	if _, ok := store.UserID(other.Create(7)); ok {
		t.Fatal("token from another secret must not verify")
	}
}

func TestDestroyRevokesSession(t *testing.T) {
	store := newTestSessionStore(t)
	token := store.Create(7)

	store.Destroy(token)
	if _, ok := store.UserID(token); ok {
		t.Fatal("destroyed session must not resolve")
	}

	// Revoking twice, or revoking garbage, is fine.
	store.Destroy(token)
	store.Destroy("garbage")
}
