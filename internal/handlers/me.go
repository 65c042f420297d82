package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/strategy-canvas/auth-service/internal/logger"
	"github.com/strategy-canvas/auth-service/internal/models"
	"github.com/strategy-canvas/auth-service/internal/services"
)

// CurrentUserProvider defines the interface that the service must implement.
type CurrentUserProvider interface {
	GetCurrentUser(ctx context.Context, token string) (*models.User, error)
}

// MeUser is the full public user payload
// swagger:model MeUser
type MeUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// MeResponse represents the current-user response
// swagger:model MeResponse
type MeResponse struct {
	User MeUser `json:"user"`
}

// MeErrorResponse represents an error response for the current-user lookup
// swagger:model MeErrorResponse
type MeErrorResponse struct {
	// Error kind
	// default: Invalid token
	Error string `json:"error"`
	// Error detail
	// default: Authentication token is invalid or expired
	Message string `json:"message"`
}

// NewMeHandler returns an HTTP handler resolving the session cookie to
// the current user.
// @Summary Get current user
// @Description Verifies the session cookie and returns the logged-in user
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MeResponse "Current user"
// @Failure 401 {object} handlers.MeErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.MeErrorResponse "Account no longer exists"
// @Router /api/auth/me [get]
func NewMeHandler(svc CurrentUserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.GetCurrentUser(r.Context(), tokenFromRequest(r))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoToken):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(MeErrorResponse{
					Error:   "No token",
					Message: "Authentication token not found",
				})
			case errors.Is(err, services.ErrInvalidToken):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(MeErrorResponse{
					Error:   "Invalid token",
					Message: "Authentication token is invalid or expired",
				})
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(MeErrorResponse{
					Error:   "User not found",
					Message: "User account no longer exists",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MeErrorResponse{
					Error:   "Internal server error",
					Message: "An error occurred while fetching user data",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MeResponse{
			User: MeUser{
				ID:          user.ID.String(),
				Email:       user.Email,
				CreatedAt:   user.CreatedAt,
				LastLoginAt: user.LastLoginAt,
			},
		})
	}
}
