package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/strategy-canvas/auth-service/internal/logger"
	"github.com/strategy-canvas/auth-service/internal/services"
)

// PasswordResetRequester defines the interface that the service must implement.
type PasswordResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// ForgotPasswordRequest represents the JSON body for a reset request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// ForgotPasswordResponse represents the generic reset-request response
// swagger:model ForgotPasswordResponse
type ForgotPasswordResponse struct {
	// Generic message returned whether or not the account exists
	// default: If the email exists, a reset link has been sent
	Message string `json:"message"`
}

// ForgotPasswordErrorResponse represents an error response for a reset request
// swagger:model ForgotPasswordErrorResponse
type ForgotPasswordErrorResponse struct {
	// Error kind
	// default: Bad Request
	Error string `json:"error"`
	// Error detail
	// default: Please enter a valid email address
	Message string `json:"message"`
}

// NewForgotPasswordHandler returns an HTTP handler starting the
// password-reset flow. The success body is identical for existing and
// unknown emails, so the endpoint cannot be used to probe accounts.
// @Summary Request password reset
// @Description Stores a one-hour reset token for the account, if it exists
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Reset request"
// @Success 200 {object} handlers.ForgotPasswordResponse "Generic acknowledgement"
// @Failure 400 {object} handlers.ForgotPasswordErrorResponse "Missing or malformed email"
// @Router /api/auth/forgot-password [post]
func NewForgotPasswordHandler(svc PasswordResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ForgotPasswordErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid request body",
			})
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ForgotPasswordErrorResponse{
					Error:   "Bad Request",
					Message: "Email is required",
				})
			case errors.Is(err, services.ErrInvalidEmail):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ForgotPasswordErrorResponse{
					Error:   "Bad Request",
					Message: "Please enter a valid email address",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ForgotPasswordErrorResponse{
					Error:   "Internal Server Error",
					Message: "An error occurred while processing your request",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ForgotPasswordResponse{
			Message: "If the email exists, a reset link has been sent",
		})
	}
}
