package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/keepimport"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ keepimport.UserService = (*UserService)(nil)

// UserService implements keepimport.UserService using SQLite.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user.
func (s *UserService) CreateUser(ctx context.Context, user *keepimport.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now().UTC()
	if user.Email == "" {
		user.Email = syntheticEmail(user.ExternalID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, external_id, email, created_at)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.ExternalID, user.Email, user.CreatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return keepimport.Errorf(keepimport.ECONFLICT, "user with external ID %q already exists", user.ExternalID)
	}
	return err
}

// FindUserByExternalID retrieves a user by external identifier.
func (s *UserService) FindUserByExternalID(ctx context.Context, externalID string) (*keepimport.User, error) {
	var user keepimport.User
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, external_id, email, created_at
		FROM users
		WHERE external_id = ?
	`, externalID).Scan(&user.ID, &user.ExternalID, &user.Email, &createdAt)

	if err == sql.ErrNoRows {
		return nil, keepimport.Errorf(keepimport.ENOTFOUND, "user not found")
	}
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &user, nil
}

// FindOrCreateUser retrieves the user with the given external identifier,
// lazily creating one with a synthetic placeholder email if none exists.
func (s *UserService) FindOrCreateUser(ctx context.Context, externalID string) (*keepimport.User, error) {
	user, err := s.FindUserByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if keepimport.ErrorCode(err) != keepimport.ENOTFOUND {
		return nil, err
	}

	user = &keepimport.User{ExternalID: externalID}
	if err := s.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent import for the same user.
		if keepimport.ErrorCode(err) == keepimport.ECONFLICT {
			return s.FindUserByExternalID(ctx, externalID)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser permanently removes a user. Associated notes are removed by
// the ON DELETE CASCADE constraint.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return keepimport.Errorf(keepimport.ENOTFOUND, "user not found")
	}

	return nil
}

// syntheticEmail derives a placeholder email from an external identifier.
// The .invalid TLD guarantees it never routes anywhere.
func syntheticEmail(externalID string) string {
	return externalID + "@keep.import.invalid"
}
