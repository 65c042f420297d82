package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/strategy-canvas/auth-service/internal/logger"
	"github.com/strategy-canvas/auth-service/internal/services"
)

// PasswordResetConfirmer defines the interface that the service must implement.
type PasswordResetConfirmer interface {
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// ResetPasswordRequest represents the JSON body for completing a reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Reset token from the emailed link
	// required: true
	Token string `json:"token"`
	// New password
	// required: true
	// default: supersecret
	Password string `json:"password"`
}

// ResetPasswordResponse represents a successful reset confirmation
// swagger:model ResetPasswordResponse
type ResetPasswordResponse struct {
	// Confirmation message
	// default: Password has been successfully reset
	Message string `json:"message"`
}

// ResetPasswordErrorResponse represents an error response for a reset confirmation
// swagger:model ResetPasswordErrorResponse
type ResetPasswordErrorResponse struct {
	// Error kind
	// default: Bad Request
	Error string `json:"error"`
	// Error detail
	// default: Reset link is invalid or expired
	Message string `json:"message"`
}

// NewResetPasswordHandler returns an HTTP handler completing the
// password-reset flow.
// @Summary Confirm password reset
// @Description Sets a new password and consumes the reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Reset confirmation"
// @Success 200 {object} handlers.ResetPasswordResponse "Password updated"
// @Failure 400 {object} handlers.ResetPasswordErrorResponse "Missing fields, weak password, or bad token"
// @Router /api/auth/reset-password [post]
func NewResetPasswordHandler(svc PasswordResetConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid request body",
			})
			return
		}

		if err := svc.ConfirmPasswordReset(r.Context(), req.Token, req.Password); err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
					Error:   "Bad Request",
					Message: "Token and password are required",
				})
			case errors.Is(err, services.ErrInvalidPassword):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
					Error:   "Bad Request",
					Message: "Password must be at least 8 characters long",
				})
			case errors.Is(err, services.ErrInvalidOrExpiredToken):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
					Error:   "Bad Request",
					Message: "Reset link is invalid or expired",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ResetPasswordErrorResponse{
					Error:   "Internal Server Error",
					Message: "An error occurred while processing your request",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ResetPasswordResponse{
			Message: "Password has been successfully reset",
		})
	}
}
