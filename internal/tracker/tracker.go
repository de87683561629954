// Package tracker implements the user-facing operations shared by the CLI, TUI and HTTP API.
package tracker

import (
	"fmt"
	"time"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/logger"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/rollover"
	"github.com/julianstephens/hard75/internal/storage"
	"github.com/julianstephens/hard75/internal/validation"
)

// Backuper snapshots the database before destructive operations.
type Backuper interface {
	CreateBackup() (string, error)
}

// Service validates input before it reaches the store and runs rollover checks.
type Service struct {
	store  storage.Provider
	engine *rollover.Engine
	backup Backuper
	now    func() time.Time
}

func NewService(store storage.Provider, engine *rollover.Engine) *Service {
	return &Service{
		store:  store,
		engine: engine,
		now:    time.Now,
	}
}

// SetBackuper enables an automatic snapshot before every user reset.
func (s *Service) SetBackuper(b Backuper) {
	s.backup = b
}

// Engine exposes the rollover engine, e.g. to register listeners.
func (s *Service) Engine() *rollover.Engine {
	return s.engine
}

// Location is the timezone calendar days are evaluated in.
func (s *Service) Location() *time.Location {
	return s.engine.Location()
}

// Now returns the current time in the configured location.
func (s *Service) Now() time.Time {
	return s.now().In(s.Location())
}

func (s *Service) requireUser(username string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	_, err := s.store.GetUser(username)
	return err
}

// Login validates the username and creates the user on first sight.
func (s *Service) Login(username string) (models.User, bool, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return models.User{}, false, err
	}

	user, created, err := s.store.CreateUser(models.User{Username: username, CreatedAt: s.now().UTC()})
	if err != nil {
		return models.User{}, false, err
	}
	if _, err := s.store.GetUserState(username); err != nil {
		return models.User{}, false, err
	}
	if created {
		logger.Info("Created user", "user", username)
	}
	return user, created, nil
}

func (s *Service) GetSettings(username string) (models.UserState, error) {
	if err := s.requireUser(username); err != nil {
		return models.UserState{}, err
	}
	return s.store.GetUserState(username)
}

func (s *Service) UpdateSettings(username string, patch models.UserStatePatch) (models.UserState, error) {
	if err := validation.ValidateUserStatePatch(patch); err != nil {
		return models.UserState{}, err
	}
	if err := s.requireUser(username); err != nil {
		return models.UserState{}, err
	}
	return s.store.UpdateUserState(username, patch)
}

// SelectDay moves the UI viewport. It never affects rollover.
func (s *Service) SelectDay(username string, day int) (models.UserState, error) {
	return s.UpdateSettings(username, models.UserStatePatch{SelectedDay: &day})
}

// SetLabels customizes habit labels. Empty labels restore the default.
func (s *Service) SetLabels(username string, labels models.HabitLabels) (models.UserState, error) {
	return s.UpdateSettings(username, models.UserStatePatch{HabitLabels: labels})
}

// ResetLabels restores every default label.
func (s *Service) ResetLabels(username string) (models.UserState, error) {
	labels := make(models.HabitLabels, len(models.HabitKeys))
	for _, k := range models.HabitKeys {
		labels[k] = ""
	}
	return s.SetLabels(username, labels)
}

func (s *Service) GetProgress(username string, day int) (models.DayProgress, error) {
	if err := validation.ValidateDay(day); err != nil {
		return models.DayProgress{}, err
	}
	if err := s.requireUser(username); err != nil {
		return models.DayProgress{}, err
	}
	return s.store.GetDayProgress(username, day)
}

// GetAllProgress returns one entry per program day in order, defaults filled in.
func (s *Service) GetAllProgress(username string) ([]models.DayProgress, error) {
	if err := s.requireUser(username); err != nil {
		return nil, err
	}
	stored, err := s.store.ListDayProgress(username)
	if err != nil {
		return nil, err
	}

	all := make([]models.DayProgress, constants.ProgramDays)
	for i := range all {
		all[i] = models.NewDayProgress(username, i+1)
	}
	for _, p := range stored {
		if p.DayNumber >= 1 && p.DayNumber <= constants.ProgramDays {
			all[p.DayNumber-1] = p
		}
	}
	return all, nil
}

func (s *Service) UpdateProgress(username string, day int, patch models.DayProgressPatch) (models.DayProgress, error) {
	if err := validation.ValidateDay(day); err != nil {
		return models.DayProgress{}, err
	}
	if err := s.requireUser(username); err != nil {
		return models.DayProgress{}, err
	}
	return s.store.UpsertDayProgress(username, day, patch)
}

// ToggleHabit flips one habit on the given day.
func (s *Service) ToggleHabit(username string, day int, key models.HabitKey) (models.DayProgress, error) {
	current, err := s.GetProgress(username, day)
	if err != nil {
		return models.DayProgress{}, err
	}
	var patch models.DayProgressPatch
	patch.SetHabit(key, !current.Done(key))
	return s.store.UpsertDayProgress(username, day, patch)
}

// ResetUser clears all progress and day counters. Habit labels survive.
func (s *Service) ResetUser(username string) error {
	if err := s.requireUser(username); err != nil {
		return err
	}

	if s.backup != nil {
		path, err := s.backup.CreateBackup()
		if err != nil {
			logger.Warn("Automatic backup before reset failed", "user", username, "error", err)
		} else {
			logger.Info("Created backup before reset", "user", username, "path", path)
		}
	}

	if err := s.store.ResetAllProgress(username); err != nil {
		return err
	}
	if err := s.store.ResetDayCounters(username); err != nil {
		return err
	}
	logger.Info("Reset user", "user", username)
	return nil
}

// CheckRollover runs the daily rollover check at now.
func (s *Service) CheckRollover(username string, now time.Time) (rollover.Result, error) {
	if err := s.requireUser(username); err != nil {
		return rollover.Result{}, err
	}
	return s.engine.Check(username, now)
}

func (s *Service) DeleteUser(username string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	if err := s.store.DeleteUser(username); err != nil {
		return err
	}
	logger.Info("Deleted user", "user", username)
	return nil
}

func (s *Service) ListUsers() ([]models.User, error) {
	return s.store.ListUsers()
}

// Status is everything a dashboard needs for one user at one instant.
type Status struct {
	State         models.UserState   `json:"state"`
	Today         models.DayProgress `json:"today"`
	Selected      models.DayProgress `json:"selected"`
	Countdown     time.Duration      `json:"countdown"`
	Message       string             `json:"message"`
	CompletedDays int                `json:"completedDays"`
}

// Status runs a rollover check and then reads the resulting state.
func (s *Service) Status(username string) (Status, rollover.Result, error) {
	now := s.Now()
	res, err := s.CheckRollover(username, now)
	if err != nil {
		return Status{}, rollover.Result{}, err
	}

	state, err := s.store.GetUserState(username)
	if err != nil {
		return Status{}, res, err
	}
	today, err := s.store.GetDayProgress(username, clamp(state.ActualDay))
	if err != nil {
		return Status{}, res, err
	}
	selected, err := s.store.GetDayProgress(username, clamp(state.SelectedDay))
	if err != nil {
		return Status{}, res, err
	}

	completed := state.ActualDay - 1
	if models.IsComplete(today) {
		completed++
	}

	return Status{
		State:         state,
		Today:         today,
		Selected:      selected,
		Countdown:     rollover.TimeUntilRollover(now, s.Location()),
		Message:       rollover.CountdownMessage(state, today, now, s.Location()),
		CompletedDays: completed,
	}, res, nil
}

func clamp(day int) int {
	if day < 1 {
		return 1
	}
	if day > constants.ProgramDays {
		return constants.ProgramDays
	}
	return day
}

// Verify inspects every user's stored data for integrity problems.
func (s *Service) Verify() (validation.ValidationResult, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return validation.ValidationResult{}, err
	}

	v := validation.New()
	now := s.now()
	total := validation.ValidationResult{Conflicts: []validation.Conflict{}}
	for _, u := range users {
		state, err := s.store.GetUserState(u.Username)
		if err != nil {
			return total, fmt.Errorf("failed to load %s: %w", u.Username, err)
		}
		progress, err := s.store.ListDayProgress(u.Username)
		if err != nil {
			return total, fmt.Errorf("failed to load progress for %s: %w", u.Username, err)
		}
		res := v.ValidateUser(state, progress, now)
		total.Conflicts = append(total.Conflicts, res.Conflicts...)
	}
	return total, nil
}
