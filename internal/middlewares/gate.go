package middlewares

import (
	"net/http"

	"github.com/strategy-canvas/auth-service/internal/gate"
	"github.com/strategy-canvas/auth-service/internal/jwt"
	"github.com/strategy-canvas/auth-service/internal/logger"
)

// GateMiddleware runs the access gate ahead of every page navigation.
// Allow passes the request through; the redirect decisions become 302
// responses, and a ClearToken instruction expires the auth cookie.
func GateMiddleware(g *gate.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(jwt.CookieName); err == nil {
				token = cookie.Value
			}
			returnURL := r.URL.Query().Get("returnUrl")

			decision := g.Decide(r.Context(), r.URL.Path, token, returnURL)

			if decision.ClearToken {
				http.SetCookie(w, &http.Cookie{
					Name:     jwt.CookieName,
					Value:    "",
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   -1,
				})
			}

			switch decision.Action {
			case gate.RedirectToLogin, gate.RedirectAway:
				logger.Log.Infow("navigation redirected",
					"path", r.URL.Path,
					"location", decision.Location,
					"cleared_token", decision.ClearToken,
				)
				http.Redirect(w, r, decision.Location, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
