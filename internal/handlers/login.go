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

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: Passw0rd!
	Password string `json:"password"`
}

// LoginUser is the user payload returned after login
// swagger:model LoginUser
type LoginUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// LoginResponse represents a successful login response. The session token
// travels in an HttpOnly cookie, not in the body.
// swagger:model LoginResponse
type LoginResponse struct {
	// Success message
	// default: Login successful
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

// LoginErrorResponse represents an error response for login
// swagger:model LoginErrorResponse
type LoginErrorResponse struct {
	// Error kind
	// default: Invalid credentials
	Error string `json:"error"`
	// Error detail
	// default: Invalid email or password
	Message string `json:"message"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates a user and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "Session established"
// @Failure 400 {object} handlers.LoginErrorResponse "Missing credentials"
// @Failure 401 {object} handlers.LoginErrorResponse "Invalid email or password"
// @Router /api/auth/login [post]
func NewLoginHandler(svc Loginer, cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(LoginErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid request body",
			})
			return
		}

		token, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(LoginErrorResponse{
					Error:   "Missing credentials",
					Message: "Email and password are required",
				})
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(LoginErrorResponse{
					Error:   "Invalid credentials",
					Message: "Invalid email or password",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(LoginErrorResponse{
					Error:   "Internal server error",
					Message: "An error occurred during login",
				})
			}
			return
		}

		setAuthCookie(w, token, cookie)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LoginResponse{
			Message: "Login successful",
			User: LoginUser{
				ID:          user.ID.String(),
				Email:       user.Email,
				LastLoginAt: user.LastLoginAt,
			},
		})
	}
}
