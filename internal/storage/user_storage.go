package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"WorkshopMapDashboard/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
)

const (
	sqliteConstraintUnique = 2067
	pgUniqueViolation      = "23505"
)

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqliteConstraintUnique
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// CreateUser inserts an admin account and returns its id.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		s.rebind("INSERT INTO users(username, password_hash, created_at) VALUES(?, ?, ?) RETURNING id"),
		username, passwordHash, time.Now().Unix(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	return id, nil
}

// GetUserByUsername returns ErrNotFound when no such user exists.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	var created int64

	row := s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, username, password_hash, created_at FROM users WHERE username = ?"),
		username)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, ErrNotFound
		}
		return user, err
	}
	user.CreatedAt = time.Unix(created, 0).UTC()
	return user, nil
}
