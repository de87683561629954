package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/utils"
	"github.com/julianstephens/hard75/internal/validation"
)

const progressColumns = `id, username, day_number, workout1, workout2, diet, water, reading, sleep, photo, reflection, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDayProgress(row rowScanner) (models.DayProgress, error) {
	var p models.DayProgress
	var updatedAt string
	err := row.Scan(
		&p.ID, &p.Username, &p.DayNumber,
		&p.Workout1, &p.Workout2, &p.Diet, &p.Water, &p.Reading, &p.Sleep, &p.Photo,
		&p.Reflection, &updatedAt,
	)
	if err != nil {
		return models.DayProgress{}, err
	}
	if updatedAt != "" {
		t, err := utils.ParseTimestamp(updatedAt)
		if err != nil {
			return models.DayProgress{}, fmt.Errorf("day %d updated_at: %w", p.DayNumber, err)
		}
		p.UpdatedAt = &t
	}
	return p, nil
}

func getDayProgress(q querier, username string, day int, forUpdate bool) (models.DayProgress, error) {
	query := "SELECT " + progressColumns + " FROM day_progress WHERE username = $1 AND day_number = $2"
	if forUpdate {
		query += " FOR UPDATE"
	}
	p, err := scanDayProgress(q.QueryRow(query, username, day))
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewDayProgress(username, day), nil
	}
	if err != nil {
		return models.DayProgress{}, fmt.Errorf("failed to get day %d: %w", day, err)
	}
	return p, nil
}

func (s *Store) GetDayProgress(username string, day int) (models.DayProgress, error) {
	if err := validation.ValidateDay(day); err != nil {
		return models.DayProgress{}, err
	}
	return getDayProgress(s.db, username, day, false)
}

func (s *Store) UpsertDayProgress(username string, day int, patch models.DayProgressPatch) (models.DayProgress, error) {
	if err := validation.ValidateDay(day); err != nil {
		return models.DayProgress{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.DayProgress{}, err
	}
	defer tx.Rollback()

	p, err := getDayProgress(tx, username, day, true)
	if err != nil {
		return models.DayProgress{}, err
	}
	patch.Apply(&p)
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.UpdatedAt = &now

	_, err = tx.Exec(`
		INSERT INTO day_progress (`+progressColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (username, day_number) DO UPDATE SET
			workout1 = EXCLUDED.workout1,
			workout2 = EXCLUDED.workout2,
			diet = EXCLUDED.diet,
			water = EXCLUDED.water,
			reading = EXCLUDED.reading,
			sleep = EXCLUDED.sleep,
			photo = EXCLUDED.photo,
			reflection = EXCLUDED.reflection,
			updated_at = EXCLUDED.updated_at`,
		p.ID, username, day,
		p.Workout1, p.Workout2, p.Diet, p.Water, p.Reading, p.Sleep, p.Photo,
		p.Reflection, utils.FormatTimestamp(now),
	)
	if err != nil {
		return models.DayProgress{}, fmt.Errorf("failed to save day %d: %w", day, err)
	}

	if err := tx.Commit(); err != nil {
		return models.DayProgress{}, err
	}
	return p, nil
}

func (s *Store) ListDayProgress(username string) ([]models.DayProgress, error) {
	rows, err := s.db.Query("SELECT "+progressColumns+" FROM day_progress WHERE username = $1 ORDER BY day_number", username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DayProgress
	for rows.Next() {
		p, err := scanDayProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ResetAllProgress(username string) error {
	if _, err := s.db.Exec("DELETE FROM day_progress WHERE username = $1", username); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	return nil
}
