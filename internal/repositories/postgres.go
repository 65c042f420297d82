package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/strategy-canvas/auth-service/internal/logger"
	"github.com/strategy-canvas/auth-service/internal/models"
)

// uniqueViolation is the Postgres error code for unique-constraint hits.
const uniqueViolation = "23505"

// PostgresUserRepository stores user records in a Postgres users table.
// It implements the same contract as FileUserRepository and is the
// backend of choice when multiple processes share the store.
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a repository on the given connection.
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new record. A unique-email violation maps to
// ErrEmailExists; callers normalize emails first.
func (r *PostgresUserRepository) Create(ctx context.Context, rec *models.UserRecord) error {
	const query = `
		INSERT INTO users (id, email, password_hash, created_at, last_login_at, reset_token, reset_token_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Email, rec.PasswordHash, rec.CreatedAt, rec.LastLoginAt, rec.ResetToken, rec.ResetTokenExpiry)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailExists
		}
		logger.Log.Errorw("failed to insert user", "email", rec.Email, "error", err)
		return err
	}

	logger.Log.Infow("user created", "user_id", rec.ID, "email", rec.Email)
	return nil
}

// GetByEmail returns the record for the given email, or (nil, nil) if absent.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	const query = `
		SELECT id, email, password_hash, created_at, last_login_at, reset_token, reset_token_expiry
		FROM users
		WHERE email = $1
	`

	var rec models.UserRecord
	if err := r.db.GetContext(ctx, &rec, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetByID returns the record for the given id, or (nil, nil) if absent.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserRecord, error) {
	const query = `
		SELECT id, email, password_hash, created_at, last_login_at, reset_token, reset_token_expiry
		FROM users
		WHERE id = $1
	`

	var rec models.UserRecord
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetByResetToken returns the record holding the given reset token.
// Expired tokens are cleared first, so they count as absent.
func (r *PostgresUserRepository) GetByResetToken(ctx context.Context, token string) (*models.UserRecord, error) {
	const clearQuery = `
		UPDATE users
		SET reset_token = NULL, reset_token_expiry = NULL
		WHERE reset_token = $1 AND reset_token_expiry < $2
	`
	const query = `
		SELECT id, email, password_hash, created_at, last_login_at, reset_token, reset_token_expiry
		FROM users
		WHERE reset_token = $1
	`

	res, err := r.db.ExecContext(ctx, clearQuery, token, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if cleared, _ := res.RowsAffected(); cleared > 0 {
		logger.Log.Infow("expired reset token cleared", "rows", cleared)
	}

	var rec models.UserRecord
	if err := r.db.GetContext(ctx, &rec, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Update merges the given fields into the record and returns the updated
// record, or (nil, nil) if the id is unknown.
func (r *PostgresUserRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserRecord, error) {
	const query = `
		UPDATE users
		SET password_hash      = COALESCE($2::VARCHAR, password_hash),
		    last_login_at      = COALESCE($3::TIMESTAMPTZ, last_login_at),
		    reset_token        = CASE WHEN $6::BOOLEAN THEN NULL ELSE COALESCE($4::VARCHAR, reset_token) END,
		    reset_token_expiry = CASE WHEN $6::BOOLEAN THEN NULL ELSE COALESCE($5::TIMESTAMPTZ, reset_token_expiry) END
		WHERE id = $1
		RETURNING id, email, password_hash, created_at, last_login_at, reset_token, reset_token_expiry
	`

	var rec models.UserRecord
	err := r.db.GetContext(ctx, &rec, query,
		id, upd.PasswordHash, upd.LastLoginAt, upd.ResetToken, upd.ResetTokenExpiry, upd.ClearReset)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record and reports whether it was present.
func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows > 0 {
		logger.Log.Infow("user deleted", "user_id", id)
	}
	return rows > 0, nil
}

// ListAll returns public projections of every stored record.
func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, email, password_hash, created_at, last_login_at, reset_token, reset_token_expiry
		FROM users
		ORDER BY created_at
	`

	var recs []models.UserRecord
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(recs))
	for i := range recs {
		users = append(users, *recs[i].Public())
	}
	return users, nil
}
