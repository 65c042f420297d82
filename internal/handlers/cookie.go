package handlers

import (
	"net/http"
	"time"

	"github.com/strategy-canvas/auth-service/internal/jwt"
)

// CookieConfig controls how the session cookie is written. The cookie is
// always HttpOnly and SameSite=Lax; Secure is enabled for production
// deployments behind TLS.
type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

// setAuthCookie attaches the session token to the response.
func setAuthCookie(w http.ResponseWriter, token string, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cfg.MaxAge.Seconds()),
	})
}

// clearAuthCookie tells the client to expire the session cookie immediately.
func clearAuthCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// tokenFromRequest reads the session token from the auth cookie, or ""
// when no cookie is present.
func tokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(jwt.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
