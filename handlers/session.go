package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/umakantv/go-utils/cache"
)

const (
	sessionCookieName = "session_id"
	sessionKeyPrefix  = "session:"
	sessionTTL        = 24 * time.Hour
)

// SessionStore keeps session state server-side in the cache. The
// cookie value is the session id plus an HMAC-SHA256 signature, so a
// tampered cookie fails verification before any cache lookup, and
// logout revokes the session by deleting the cache entry.
type SessionStore struct {
	cache  cache.Cache
	secret []byte
}

func NewSessionStore(c cache.Cache, secret string) *SessionStore {
	return &SessionStore{cache: c, secret: []byte(secret)}
}

// Create registers a session for the user and returns the signed
// cookie value.
func (s *SessionStore) Create(userID int) string {
	id := uuid.New().String()
	s.cache.Set(sessionKeyPrefix+id, map[string]interface{}{"user_id": userID}, sessionTTL)
	return s.sign(id)
}

// UserID resolves a cookie value back to the user id it was issued
// for. Fails when the signature does not verify or the session has
// been revoked or expired.
func (s *SessionStore) UserID(token string) (int, bool) {
	id, ok := s.verify(token)
	if !ok {
		return 0, false
	}
	cached, err := s.cache.Get(sessionKeyPrefix + id)
	if err != nil {
		return 0, false
	}
	data, ok := cached.(map[string]interface{})
	if !ok {
		return 0, false
	}
	switch v := data["user_id"].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		// Redis round-trips numbers through JSON.
		return int(v), true
	}
	return 0, false
}

// Destroy revokes the session referenced by the cookie value. Safe to
// call with garbage or an already-revoked token.
func (s *SessionStore) Destroy(token string) {
	if id, ok := s.verify(token); ok {
		s.cache.Delete(sessionKeyPrefix + id)
	}
}

func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (s *SessionStore) verify(token string) (string, bool) {
	id, sig, found := strings.Cut(token, ".")
	if !found {
		return "", false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return id, true
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // True behind HTTPS
		MaxAge:   int(sessionTTL / time.Second),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
