package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/strategy-canvas/auth-service/internal/jwt"
	"github.com/strategy-canvas/auth-service/internal/logger"
	"github.com/strategy-canvas/auth-service/internal/models"
	"github.com/strategy-canvas/auth-service/internal/password"
	"github.com/strategy-canvas/auth-service/internal/repositories"
	"github.com/strategy-canvas/auth-service/internal/validation"
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = time.Hour

// Error variables. Anything not in this list that escapes the service is a
// store or engine fault and maps to a generic server error at the handler.
var (
	ErrMissingFields         = errors.New("required fields are missing")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrInvalidPassword       = errors.New("password does not meet the policy")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrNoToken               = errors.New("authentication token not found")
	ErrInvalidToken          = errors.New("authentication token is invalid or expired")
	ErrUserNotFound          = errors.New("user account no longer exists")
	ErrInvalidOrExpiredToken = errors.New("reset token is invalid or expired")
)

// UserReader defines read operations on the credential store.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserRecord, error)
	GetByResetToken(ctx context.Context, token string) (*models.UserRecord, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// UserWriter defines write operations on the credential store.
type UserWriter interface {
	Create(ctx context.Context, rec *models.UserRecord) error
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserRecord, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TokenProvider issues and verifies session tokens.
type TokenProvider interface {
	Generate(ctx context.Context, userID uuid.UUID, email string) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// KafkaWriter defines a Kafka writer abstraction for reset notifications.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuthService implements the account operations: register, login,
// current-user lookup and the password-reset lifecycle.
type AuthService struct {
	reader UserReader
	writer UserWriter
	token  TokenProvider

	kafkaWriter   KafkaWriter
	resetBaseURL  string
	now           func() time.Time
	newResetToken func() string
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithKafkaWriter sets the reset-notification publisher. A nil writer is
// tolerated: notifications are skipped, tokens are still stored.
func WithKafkaWriter(w KafkaWriter) AuthOption {
	return func(s *AuthService) { s.kafkaWriter = w }
}

// WithResetBaseURL sets the base URL embedded in reset links.
func WithResetBaseURL(base string) AuthOption {
	return func(s *AuthService) { s.resetBaseURL = base }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithResetTokenGenerator overrides reset-token generation, for tests.
func WithResetTokenGenerator(gen func() string) AuthOption {
	return func(s *AuthService) { s.newResetToken = gen }
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, token TokenProvider, opts ...AuthOption) *AuthService {
	s := &AuthService{
		reader:        reader,
		writer:        writer,
		token:         token,
		resetBaseURL:  "http://localhost:8080",
		now:           time.Now,
		newResetToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new account. The caller is NOT logged in by this
// operation. The returned user carries no password hash.
func (s *AuthService) Register(ctx context.Context, email, pass, confirmPassword string) (*models.User, error) {
	if email == "" || pass == "" || confirmPassword == "" {
		return nil, ErrMissingFields
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if violations := validation.PasswordViolations(pass); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPassword, violations[0])
	}
	if pass != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	normalized := validation.NormalizeEmail(email)

	existing, err := s.reader.GetByEmail(ctx, normalized)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := password.Hash(pass)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	rec := &models.UserRecord{
		ID:           uuid.New(),
		Email:        normalized,
		PasswordHash: hash,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.writer.Create(ctx, rec); err != nil {
		if errors.Is(err, repositories.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	return rec.Public(), nil
}

// Login authenticates a user and returns a session token plus the public
// user. Shape failures, unknown emails and wrong passwords all collapse
// into ErrInvalidCredentials so callers cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, *models.User, error) {
	if email == "" || pass == "" {
		return "", nil, ErrMissingFields
	}
	if !validation.IsValidEmail(email) {
		return "", nil, ErrInvalidCredentials
	}

	rec, err := s.reader.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if rec == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !password.Verify(pass, rec.PasswordHash) {
		logger.Log.Infow("login rejected", "user_id", rec.ID)
		return "", nil, ErrInvalidCredentials
	}

	loginAt := s.now().UTC()
	updated, err := s.writer.Update(ctx, rec.ID, models.UserUpdate{LastLoginAt: &loginAt})
	if err != nil {
		logger.Log.Errorw("failed to update last login", "err", err)
		return "", nil, fmt.Errorf("update last login: %w", err)
	}
	if updated == nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.token.Generate(ctx, updated.ID, updated.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, updated.Public(), nil
}

// GetCurrentUser resolves a session token to its live account.
func (s *AuthService) GetCurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims, err := s.token.GetClaims(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	rec, err := s.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user by id", "err", err)
		return nil, fmt.Errorf("get user: %w", err)
	}
	if rec == nil {
		return nil, ErrUserNotFound
	}

	return rec.Public(), nil
}

// RequestPasswordReset starts the reset flow. Whether or not the account
// exists the operation succeeds identically, so responses cannot be used
// to enumerate registered emails. For an existing account a fresh token
// with a one hour expiry is stored and handed to the delivery channel.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}
	if !validation.IsValidEmail(email) {
		return ErrInvalidEmail
	}

	rec, err := s.reader.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return fmt.Errorf("get user: %w", err)
	}
	if rec == nil {
		return nil
	}

	token := s.newResetToken()
	expiry := s.now().UTC().Add(ResetTokenTTL)
	if _, err := s.writer.Update(ctx, rec.ID, models.UserUpdate{
		ResetToken:       &token,
		ResetTokenExpiry: &expiry,
	}); err != nil {
		logger.Log.Errorw("failed to store reset token", "err", err)
		return fmt.Errorf("store reset token: %w", err)
	}

	s.publishResetNotification(ctx, rec.Email, token, expiry)
	return nil
}

// publishResetNotification hands the token to the out-of-band delivery
// channel. Delivery failures are logged, not surfaced: the token is
// already stored and the response must stay indistinguishable.
func (s *AuthService) publishResetNotification(ctx context.Context, email, token string, expiry time.Time) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.resetBaseURL, token)
	logger.Log.Infow("password reset requested", "email", email, "reset_url", resetURL)

	if s.kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(models.ResetNotification{
		Email:     email,
		Token:     token,
		ExpiresAt: expiry,
		ResetURL:  resetURL,
	})
	if err != nil {
		logger.Log.Errorw("failed to encode reset notification", "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(email),
		Value: payload,
		Time:  s.now().UTC(),
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish reset notification", "err", err)
	}
}

// ConfirmPasswordReset consumes a reset token and replaces the password.
// The hash replacement and the token clearing are applied in one update.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrMissingFields
	}
	if violations := validation.PasswordViolations(newPassword); len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPassword, violations[0])
	}

	rec, err := s.reader.GetByResetToken(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to look up reset token", "err", err)
		return fmt.Errorf("get user by reset token: %w", err)
	}
	if rec == nil {
		return ErrInvalidOrExpiredToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.writer.Update(ctx, rec.ID, models.UserUpdate{
		PasswordHash: &hash,
		ClearReset:   true,
	}); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return fmt.Errorf("update password: %w", err)
	}

	logger.Log.Infow("password reset completed", "user_id", rec.ID)
	return nil
}

// DeleteAccount removes an account. Administrative operation, not routed
// to end users; used for cleanup in tests and tooling.
func (s *AuthService) DeleteAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	found, err := s.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "err", err)
		return false, fmt.Errorf("delete user: %w", err)
	}
	return found, nil
}

// ListAccounts returns all accounts without password hashes.
// Administrative operation.
func (s *AuthService) ListAccounts(ctx context.Context) ([]models.User, error) {
	users, err := s.reader.ListAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
