package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjiisub/bboard/internal/domain"
	internal_errors "github.com/jjiisub/bboard/internal/errors"
)

// SaveUser is the public entry point for creating a new user. It wraps
// the core logic in a transaction to ensure the operation is atomic.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := s.txContext()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// User is a public, read-only method to fetch a user by their email.
func (s *Storage) User(email domain.Email) (domain.User, error) {
	return s.user(s.db, email)
}

// saveUser contains the core logic for inserting a new user record.
func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id int64
	err := q.QueryRow("INSERT INTO users(email, fullname, password_hash) VALUES($1, $2, $3) RETURNING id",
		user.Email, user.FullName, user.PassHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, internal_errors.ValueConflict("An account with this email already exists")
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// user contains the core logic for fetching a single user record by email.
func (s *Storage) user(q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRow("SELECT id, email, fullname, password_hash FROM users WHERE email = $1", email).
		Scan(&user.Id, &user.Email, &user.FullName, &user.PassHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
