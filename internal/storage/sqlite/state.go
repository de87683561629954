package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/storage"
	"github.com/julianstephens/hard75/internal/utils"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func ensureUserState(q querier, username string) error {
	_, err := q.Exec(`
		INSERT INTO user_settings (username, actual_day, selected_day)
		VALUES (?, 1, 1)
		ON CONFLICT(username) DO NOTHING`, username)
	if err != nil {
		return fmt.Errorf("failed to create user settings: %w", err)
	}
	return nil
}

func getUserState(q querier, username string) (models.UserState, error) {
	state := models.NewUserState(username)
	var lastCheck, customHabits sql.NullString

	err := q.QueryRow(`
		SELECT actual_day, selected_day, last_check, custom_habits
		FROM user_settings WHERE username = ?`, username).
		Scan(&state.ActualDay, &state.SelectedDay, &lastCheck, &customHabits)
	if errors.Is(err, sql.ErrNoRows) {
		if err := ensureUserState(q, username); err != nil {
			return models.UserState{}, err
		}
		return state, nil
	}
	if err != nil {
		return models.UserState{}, fmt.Errorf("failed to get user settings: %w", err)
	}

	if lastCheck.Valid && lastCheck.String != "" {
		t, err := utils.ParseTimestamp(lastCheck.String)
		if err != nil {
			return models.UserState{}, fmt.Errorf("user %q last_check: %w", username, err)
		}
		state.LastCheck = &t
	}
	if customHabits.Valid {
		if state.HabitLabels, err = models.UnmarshalLabels(&customHabits.String); err != nil {
			return models.UserState{}, err
		}
	}
	return state, nil
}

func (s *Store) GetUserState(username string) (models.UserState, error) {
	return getUserState(s.db, username)
}

func (s *Store) UpdateUserState(username string, patch models.UserStatePatch) (models.UserState, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.UserState{}, err
	}
	defer tx.Rollback()

	state, err := getUserState(tx, username)
	if err != nil {
		return models.UserState{}, err
	}
	patch.Apply(&state)

	labels, err := models.MarshalLabels(state.HabitLabels)
	if err != nil {
		return models.UserState{}, err
	}
	var lastCheck *string
	if state.LastCheck != nil {
		v := utils.FormatTimestamp(*state.LastCheck)
		lastCheck = &v
	}

	_, err = tx.Exec(`
		UPDATE user_settings
		SET actual_day = ?, selected_day = ?, last_check = ?, custom_habits = ?
		WHERE username = ?`,
		state.ActualDay, state.SelectedDay, storage.NullString(lastCheck), storage.NullString(labels), username)
	if err != nil {
		return models.UserState{}, fmt.Errorf("failed to update user settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.UserState{}, err
	}
	return state, nil
}

func (s *Store) ResetDayCounters(username string) error {
	_, err := s.db.Exec(`
		INSERT INTO user_settings (username, actual_day, selected_day, last_check)
		VALUES (?, 1, 1, NULL)
		ON CONFLICT(username) DO UPDATE SET actual_day = 1, selected_day = 1, last_check = NULL`,
		username)
	if err != nil {
		return fmt.Errorf("failed to reset day counters: %w", err)
	}
	return nil
}
