package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strategy-canvas/auth-service/internal/jwt"
	"github.com/strategy-canvas/auth-service/internal/models"
	"github.com/strategy-canvas/auth-service/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	userID := uuid.New()
	lastLogin := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

	cookieCfg := CookieConfig{MaxAge: 7 * 24 * time.Hour, Secure: false}

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
		expectCookie bool
	}{
		{
			name: "success",
			inputBody: LoginRequest{
				Email:    "john@example.com",
				Password: "password123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "password123").
					Return("JWT_TOKEN", &models.User{
						ID:          userID,
						Email:       "john@example.com",
						LastLoginAt: lastLogin,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &LoginResponse{
				Message: "Login successful",
				User: LoginUser{
					ID:          userID.String(),
					Email:       "john@example.com",
					LastLoginAt: lastLogin,
				},
			},
			expectCookie: true,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &LoginErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid request body",
			},
		},
		{
			name: "missing credentials",
			inputBody: LoginRequest{
				Email: "john@example.com",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "").
					Return("", nil, services.ErrMissingFields)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: &LoginErrorResponse{
				Error:   "Missing credentials",
				Message: "Email and password are required",
			},
		},
		{
			name: "wrong password",
			inputBody: LoginRequest{
				Email:    "john@example.com",
				Password: "wrongpass",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "wrongpass").
					Return("", nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &LoginErrorResponse{
				Error:   "Invalid credentials",
				Message: "Invalid email or password",
			},
		},
		{
			name: "internal error",
			inputBody: LoginRequest{
				Email:    "john@example.com",
				Password: "password123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "password123").
					Return("", nil, errors.New("store unavailable"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: &LoginErrorResponse{
				Error:   "Internal server error",
				Message: "An error occurred during login",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := NewLoginHandler(mockSvc, cookieCfg)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			var respBody interface{}
			switch tt.expectedCode {
			case http.StatusOK:
				respBody = &LoginResponse{}
			default:
				respBody = &LoginErrorResponse{}
			}
			err := json.Unmarshal(w.Body.Bytes(), respBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, respBody)

			cookies := w.Result().Cookies()
			if tt.expectCookie {
				require.Len(t, cookies, 1)
				c := cookies[0]
				assert.Equal(t, jwt.CookieName, c.Name)
				assert.Equal(t, "JWT_TOKEN", c.Value)
				assert.Equal(t, "/", c.Path)
				assert.True(t, c.HttpOnly)
				assert.False(t, c.Secure)
				assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
				assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), c.MaxAge)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}
