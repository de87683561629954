package storage

import (
	"database/sql"
	"time"

	"github.com/julianstephens/hard75/internal/models"
)

// RolloverUpdate is the write half of a rollover check. It is applied only if the
// stored last check still matches the value the decision was made against.
type RolloverUpdate struct {
	LastCheck     time.Time
	ActualDay     *int
	SelectedDay   *int
	ResetProgress bool
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	GetUser(username string) (models.User, error)
	// CreateUser inserts the user unless it already exists and reports whether it was created.
	CreateUser(user models.User) (models.User, bool, error)
	DeleteUser(username string) error
	ListUsers() ([]models.User, error)

	// User state
	// GetUserState returns the stored state, creating the default one on first access.
	GetUserState(username string) (models.UserState, error)
	UpdateUserState(username string, patch models.UserStatePatch) (models.UserState, error)
	ResetDayCounters(username string) error

	// Day progress
	// GetDayProgress returns the stored record or the all-false default.
	GetDayProgress(username string, day int) (models.DayProgress, error)
	UpsertDayProgress(username string, day int, patch models.DayProgressPatch) (models.DayProgress, error)
	ListDayProgress(username string) ([]models.DayProgress, error)
	ResetAllProgress(username string) error

	// ApplyRollover compares the stored last check with expected and, when they match,
	// writes update in one transaction. It returns false if another check got there first.
	ApplyRollover(username string, expected *time.Time, update RolloverUpdate) (bool, error)

	// Utils
	GetConfigPath() string
}

// SameLastCheck reports whether two nullable last-check timestamps denote the same instant.
func SameLastCheck(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// NullInt converts an optional int into a query argument.
func NullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

// NullString converts an optional string into a query argument.
func NullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
