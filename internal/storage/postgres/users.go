package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/hard75/internal/errors"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/utils"
)

func (s *Store) GetUser(username string) (models.User, error) {
	var u models.User
	var createdAt string
	err := s.db.QueryRow("SELECT username, created_at FROM users WHERE username = $1", username).
		Scan(&u.Username, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperrors.NotFoundf("user %q", username)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if u.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
		return models.User{}, fmt.Errorf("user %q: %w", username, err)
	}
	return u, nil
}

func (s *Store) CreateUser(user models.User) (models.User, bool, error) {
	res, err := s.db.Exec(
		"INSERT INTO users (username, created_at) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		user.Username, utils.FormatTimestamp(user.CreatedAt),
	)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to create user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.User{}, false, err
	}

	stored, err := s.GetUser(user.Username)
	if err != nil {
		return models.User{}, false, err
	}
	return stored, n > 0, nil
}

func (s *Store) DeleteUser(username string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM day_progress WHERE username = $1", username); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM user_settings WHERE username = $1", username); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	res, err := tx.Exec("DELETE FROM users WHERE username = $1", username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFoundf("user %q", username)
	}

	return tx.Commit()
}

func (s *Store) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT username, created_at FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var createdAt string
		if err := rows.Scan(&u.Username, &createdAt); err != nil {
			return nil, err
		}
		if u.CreatedAt, err = utils.ParseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
