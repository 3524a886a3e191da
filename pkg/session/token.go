package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager owns the cookie that carries the upstream bearer token.
type Manager struct {
	CookieName string
	Duration   time.Duration
	Secure     bool
	now        func() time.Time
}

func NewManager(cookieName string, duration time.Duration, secure bool) *Manager {
	if cookieName == "" {
		cookieName = "token"
	}
	return &Manager{
		CookieName: cookieName,
		Duration:   duration,
		Secure:     secure,
		now:        time.Now,
	}
}

// Expiry returns the token's exp claim, or now+Duration when the token is
// not a JWT or carries no exp. The signature is not checked; the API does that.
func (m *Manager) Expiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return m.now().Add(m.Duration)
}

func (m *Manager) Set(w http.ResponseWriter, token string) {
	expires := m.Expiry(token)
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get returns the stored token. A token whose exp has passed counts as absent.
func (m *Manager) Get(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	if !m.Expiry(c.Value).After(m.now()) {
		return "", false
	}
	return c.Value, true
}

func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
