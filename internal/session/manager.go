package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is a resolved, authenticated browser session
type Session struct {
	SID   string
	Token string // upstream bearer credential
}

// Manager issues and resolves session cookies. The cookie carries only a
// signed session ID; the upstream credential stays server-side in the Store.
type Manager struct {
	Store      *Store
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool // HTTPS-only cookies; off for local development
}

// NewManager creates a session manager
func NewManager(store *Store, secret, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		Store:      store,
		Secret:     secret,
		CookieName: cookieName,
		TTL:        ttl,
		Secure:     secure,
	}
}

// Issue stores the upstream credential under a fresh session ID and sets the
// signed cookie. Called on successful login only.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, token string) error {
	sid := uuid.NewString()
	if err := m.Store.Put(ctx, sid, token); err != nil {
		return err
	}

	signed, err := m.signSID(sid)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.TTL),
	})
	return nil
}

// Resolve returns the session for a request, or false when the request
// carries no valid cookie or the credential is gone.
func (m *Manager) Resolve(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(m.CookieName)
	if err != nil {
		return nil, false
	}

	sid, err := m.parseSID(cookie.Value)
	if err != nil {
		return nil, false
	}

	token, ok := m.Store.Get(r.Context(), sid)
	if !ok {
		return nil, false
	}
	return &Session{SID: sid, Token: token}, true
}

// Expire drops the stored credential and expires the cookie. Triggered by
// upstream 401, never by an explicit user action.
func (m *Manager) Expire(ctx context.Context, w http.ResponseWriter, sid string) {
	m.Store.Clear(ctx, sid)
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		MaxAge:   -1,
	})
}

// signSID wraps a session ID into a signed token
func (m *Manager) signSID(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(m.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.Secret))
}

// parseSID validates a signed cookie value and extracts the session ID
func (m *Manager) parseSID(value string) (string, error) {
	token, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.Secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session token missing sid")
	}
	return sid, nil
}
