package postgres

import (
	"fmt"
	"time"

	"github.com/julianstephens/hard75/internal/storage"
	"github.com/julianstephens/hard75/internal/utils"
)

func (s *Store) ApplyRollover(username string, expected *time.Time, update storage.RolloverUpdate) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	current, err := getUserState(tx, username, true)
	if err != nil {
		return false, err
	}
	if !storage.SameLastCheck(current.LastCheck, expected) {
		return false, nil
	}

	if update.ResetProgress {
		if _, err := tx.Exec("DELETE FROM day_progress WHERE username = $1", username); err != nil {
			return false, fmt.Errorf("failed to reset progress: %w", err)
		}
	}

	_, err = tx.Exec(`
		UPDATE user_settings
		SET last_check = $1,
			actual_day = COALESCE($2::integer, actual_day),
			selected_day = COALESCE($3::integer, selected_day)
		WHERE username = $4`,
		utils.FormatTimestamp(update.LastCheck), storage.NullInt(update.ActualDay), storage.NullInt(update.SelectedDay), username)
	if err != nil {
		return false, fmt.Errorf("failed to apply rollover: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
