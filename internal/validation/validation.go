package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/hard75/internal/constants"
	apperrors "github.com/julianstephens/hard75/internal/errors"
	"github.com/julianstephens/hard75/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateUsername checks length (3-20) and charset ([A-Za-z0-9_-]).
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return apperrors.Validationf("username is required")
	case n < constants.UsernameMinLength:
		return apperrors.Validationf("username must be at least %d characters", constants.UsernameMinLength)
	case n > constants.UsernameMaxLength:
		return apperrors.Validationf("username must be %d characters or less", constants.UsernameMaxLength)
	case !usernamePattern.MatchString(username):
		return apperrors.Validationf("username can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidateDay rejects day numbers outside the program.
func ValidateDay(day int) error {
	if day < 1 || day > constants.ProgramDays {
		return apperrors.Validationf("day %d is outside 1-%d", day, constants.ProgramDays)
	}
	return nil
}

// ValidateLabels checks that every key is a known habit and every label fits.
func ValidateLabels(labels models.HabitLabels) error {
	for key, label := range labels {
		if _, known := models.DefaultHabitLabels[key]; !known {
			return apperrors.Validationf("unknown habit %q", key)
		}
		if utf8.RuneCountInString(strings.TrimSpace(label)) > constants.MaxLabelLength {
			return apperrors.Validationf("label for %s exceeds %d characters", key, constants.MaxLabelLength)
		}
	}
	return nil
}

// ValidateUserStatePatch validates every field that is set on the patch.
func ValidateUserStatePatch(p models.UserStatePatch) error {
	if p.ActualDay != nil {
		if err := ValidateDay(*p.ActualDay); err != nil {
			return fmt.Errorf("actualDay: %w", err)
		}
	}
	if p.SelectedDay != nil {
		if err := ValidateDay(*p.SelectedDay); err != nil {
			return fmt.Errorf("selectedDay: %w", err)
		}
	}
	if p.HabitLabels != nil {
		if err := ValidateLabels(p.HabitLabels); err != nil {
			return err
		}
	}
	return nil
}

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictDayOutOfRange      ConflictType = "day_out_of_range"
	ConflictLastCheckInFuture  ConflictType = "last_check_in_future"
	ConflictProgressAheadOfDay ConflictType = "progress_ahead_of_actual_day"
	ConflictDuplicateDay       ConflictType = "duplicate_day"
	ConflictUnknownHabitLabel  ConflictType = "unknown_habit_label"
	ConflictLabelTooLong       ConflictType = "label_too_long"
	ConflictProgressWrongOwner ConflictType = "progress_wrong_owner"
)

// Conflict represents a detected problem in a user's stored state
type Conflict struct {
	Type        ConflictType
	Description string
	Username    string
	Day         int // 0 when not day-specific
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored user data for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateUser inspects a user's state and stored progress rows as of now.
func (v *Validator) ValidateUser(state models.UserState, progress []models.DayProgress, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	add := func(ct ConflictType, day int, format string, args ...interface{}) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ct,
			Description: fmt.Sprintf("%s: ", state.Username) + fmt.Sprintf(format, args...),
			Username:    state.Username,
			Day:         day,
		})
	}

	if ValidateDay(state.ActualDay) != nil {
		add(ConflictDayOutOfRange, state.ActualDay, "actual day %d is outside 1-%d", state.ActualDay, constants.ProgramDays)
	}
	if ValidateDay(state.SelectedDay) != nil {
		add(ConflictDayOutOfRange, state.SelectedDay, "selected day %d is outside 1-%d", state.SelectedDay, constants.ProgramDays)
	}
	if state.LastCheck != nil && state.LastCheck.After(now) {
		add(ConflictLastCheckInFuture, 0, "last check %s is in the future", state.LastCheck.Format(constants.TimestampFormat))
	}

	keys := make([]string, 0, len(state.HabitLabels))
	for k := range state.HabitLabels {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := models.HabitKey(k)
		if _, known := models.DefaultHabitLabels[key]; !known {
			add(ConflictUnknownHabitLabel, 0, "label set for unknown habit %q", k)
			continue
		}
		if utf8.RuneCountInString(state.HabitLabels[key]) > constants.MaxLabelLength {
			add(ConflictLabelTooLong, 0, "label for %s exceeds %d characters", k, constants.MaxLabelLength)
		}
	}

	seen := make(map[int]bool)
	for _, p := range progress {
		if p.Username != state.Username {
			add(ConflictProgressWrongOwner, p.DayNumber, "day %d row belongs to %q", p.DayNumber, p.Username)
			continue
		}
		if ValidateDay(p.DayNumber) != nil {
			add(ConflictDayOutOfRange, p.DayNumber, "progress row for day %d is outside 1-%d", p.DayNumber, constants.ProgramDays)
			continue
		}
		if seen[p.DayNumber] {
			add(ConflictDuplicateDay, p.DayNumber, "more than one progress row for day %d", p.DayNumber)
		}
		seen[p.DayNumber] = true
		if p.DayNumber > state.ActualDay && p.CompletedCount() > 0 {
			add(ConflictProgressAheadOfDay, p.DayNumber, "day %d has checked habits but the program is on day %d", p.DayNumber, state.ActualDay)
		}
	}

	return result
}
