package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/strategy-canvas/auth-service/internal/logger"
	"github.com/strategy-canvas/auth-service/internal/models"
)

// ErrEmailExists is returned by Create when a record with the same
// normalized email is already present.
var ErrEmailExists = errors.New("user with this email already exists")

// usersFile is the on-disk layout: the whole collection as one document.
type usersFile struct {
	Users []models.UserRecord `json:"users"`
}

// FileUserRepository stores all user records in a single JSON file.
// Every mutation rewrites the file through a temp file + rename, so a
// reader never observes a partially written document. All access is
// serialized through one in-process mutex; sharing the file across
// processes is not supported.
type FileUserRepository struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// FileOption configures a FileUserRepository.
type FileOption func(*FileUserRepository)

// WithFileClock overrides the time source, for tests.
func WithFileClock(now func() time.Time) FileOption {
	return func(r *FileUserRepository) { r.now = now }
}

// NewFileUserRepository creates a repository backed by the given file path.
// The file and its directory are created lazily on first write.
func NewFileUserRepository(path string, opts ...FileOption) *FileUserRepository {
	r := &FileUserRepository{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// load reads the whole collection. A missing file is an empty collection.
func (r *FileUserRepository) load() (*usersFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &usersFile{Users: []models.UserRecord{}}, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var f usersFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	if f.Users == nil {
		f.Users = []models.UserRecord{}
	}
	return &f, nil
}

// save atomically replaces the collection on disk.
func (r *FileUserRepository) save(f *usersFile) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users file: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace users file: %w", err)
	}
	return nil
}

// Create appends a new record. It fails with ErrEmailExists if a record
// with the same email is already stored; callers normalize emails first.
func (r *FileUserRepository) Create(ctx context.Context, rec *models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return err
	}

	for _, u := range f.Users {
		if u.Email == rec.Email {
			return ErrEmailExists
		}
	}

	f.Users = append(f.Users, *rec)
	if err := r.save(f); err != nil {
		return err
	}

	logger.Log.Infow("user created", "user_id", rec.ID, "email", rec.Email)
	return nil
}

// GetByEmail returns the record for the given email, or (nil, nil) if absent.
func (r *FileUserRepository) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range f.Users {
		if f.Users[i].Email == email {
			u := f.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// GetByID returns the record for the given id, or (nil, nil) if absent.
func (r *FileUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range f.Users {
		if f.Users[i].ID == id {
			u := f.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// GetByResetToken returns the record holding the given reset token.
// Expired tokens count as absent and are cleared from the record as a
// side effect, so a stale token can never be looked up twice.
func (r *FileUserRepository) GetByResetToken(ctx context.Context, token string) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range f.Users {
		u := &f.Users[i]
		if u.ResetToken == nil || *u.ResetToken != token {
			continue
		}
		if u.ResetTokenExpiry == nil || r.now().After(*u.ResetTokenExpiry) {
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
			if err := r.save(f); err != nil {
				return nil, err
			}
			logger.Log.Infow("expired reset token cleared", "user_id", u.ID)
			return nil, nil
		}
		rec := *u
		return &rec, nil
	}
	return nil, nil
}

// Update merges the given fields into the record and returns the updated
// record, or (nil, nil) if the id is unknown.
func (r *FileUserRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range f.Users {
		u := &f.Users[i]
		if u.ID != id {
			continue
		}
		if upd.PasswordHash != nil {
			u.PasswordHash = *upd.PasswordHash
		}
		if upd.LastLoginAt != nil {
			u.LastLoginAt = *upd.LastLoginAt
		}
		if upd.ClearReset {
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
		} else {
			if upd.ResetToken != nil {
				u.ResetToken = upd.ResetToken
			}
			if upd.ResetTokenExpiry != nil {
				u.ResetTokenExpiry = upd.ResetTokenExpiry
			}
		}
		if err := r.save(f); err != nil {
			return nil, err
		}
		rec := *u
		return &rec, nil
	}
	return nil, nil
}

// Delete removes the record and reports whether it was present.
func (r *FileUserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return false, err
	}

	for i := range f.Users {
		if f.Users[i].ID == id {
			f.Users = append(f.Users[:i], f.Users[i+1:]...)
			if err := r.save(f); err != nil {
				return false, err
			}
			logger.Log.Infow("user deleted", "user_id", id)
			return true, nil
		}
	}
	return false, nil
}

// ListAll returns public projections of every stored record.
func (r *FileUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.load()
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(f.Users))
	for i := range f.Users {
		users = append(users, *f.Users[i].Public())
	}
	return users, nil
}
