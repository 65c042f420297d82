package handlers

import (
	"encoding/json"
	"net/http"
)

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success message
	// default: Successfully logged out
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler for logout. Sessions are
// stateless, so logging out only instructs the client to drop its
// cookie; any token it presented is ignored.
// @Summary User logout
// @Description Expires the session cookie immediately
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.LogoutResponse "Session cookie cleared"
// @Router /api/auth/logout [post]
func NewLogoutHandler(cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearAuthCookie(w, cookie)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogoutResponse{
			Message: "Successfully logged out",
		})
	}
}
