// Package rollover decides and applies the daily advance-or-reset transition.
package rollover

import (
	"fmt"
	"time"

	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/logger"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/storage"
	"github.com/julianstephens/hard75/internal/utils"
)

// Action is what a rollover check did.
type Action string

const (
	ActionNone        Action = "none"        // already checked today
	ActionInitialized Action = "initialized" // first-ever check, timestamp only
	ActionAdvanced    Action = "advanced"
	ActionReset       Action = "reset"
	ActionFinished    Action = "finished" // day 75 completed
	ActionClockSkew   Action = "clock_skew"
	ActionSkipped     Action = "skipped" // a concurrent check won
)

// Decision is the outcome of Decide before it is persisted.
type Decision struct {
	Action         Action
	DaysPassed     int
	PrevActualDay  int
	NewActualDay   int
	NewSelectedDay int
	// WriteTimestamp is false only for ActionNone.
	WriteTimestamp bool
}

// Result is a persisted decision.
type Result struct {
	Decision
	Username  string
	CheckedAt time.Time
}

// Changed reports whether the check moved the user's program counters.
func (r Result) Changed() bool {
	return r.Action == ActionAdvanced || r.Action == ActionReset
}

// Message returns a one-line description suitable for CLI output and notifications.
func (r Result) Message() string {
	switch r.Action {
	case ActionAdvanced:
		return fmt.Sprintf("Day %d complete. Advanced to day %d of %d.", r.PrevActualDay, r.NewActualDay, constants.ProgramDays)
	case ActionReset:
		if r.DaysPassed > 1 {
			return fmt.Sprintf("Missed %d days. Progress reset to day 1.", r.DaysPassed-1)
		}
		return fmt.Sprintf("Day %d was incomplete. Progress reset to day 1.", r.PrevActualDay)
	case ActionFinished:
		return fmt.Sprintf("All %d days complete. Challenge finished!", constants.ProgramDays)
	case ActionInitialized:
		return "Rollover tracking started."
	case ActionClockSkew:
		return "Clock moved backwards; nothing changed."
	case ActionSkipped:
		return "Another check already handled today."
	default:
		return "Already checked today."
	}
}

// Decide is the pure rollover rule. progress is the record for state.ActualDay.
// Calendar dates are taken in loc and compared as UTC midnights so DST days count as one.
func Decide(state models.UserState, progress models.DayProgress, now time.Time, loc *time.Location) Decision {
	d := Decision{
		Action:         ActionNone,
		PrevActualDay:  state.ActualDay,
		NewActualDay:   state.ActualDay,
		NewSelectedDay: state.SelectedDay,
	}

	if state.LastCheck == nil {
		d.Action = ActionInitialized
		d.WriteTimestamp = true
		return d
	}

	d.DaysPassed = utils.DaysBetween(*state.LastCheck, now, loc)
	if d.DaysPassed == 0 {
		return d
	}
	d.WriteTimestamp = true

	switch {
	case d.DaysPassed < 0:
		d.Action = ActionClockSkew
	case d.DaysPassed > 1 || !models.IsComplete(progress):
		d.Action = ActionReset
		d.NewActualDay = 1
		d.NewSelectedDay = 1
	case state.ActualDay < constants.ProgramDays:
		d.Action = ActionAdvanced
		d.NewActualDay = state.ActualDay + 1
		d.NewSelectedDay = d.NewActualDay
	default:
		d.Action = ActionFinished
	}
	return d
}

// Update converts a decision into the store write. ok is false when nothing is persisted.
func (d Decision) Update(now time.Time) (update storage.RolloverUpdate, ok bool) {
	if !d.WriteTimestamp {
		return storage.RolloverUpdate{}, false
	}
	update.LastCheck = now
	switch d.Action {
	case ActionAdvanced:
		update.ActualDay = intPtr(d.NewActualDay)
		update.SelectedDay = intPtr(d.NewSelectedDay)
	case ActionReset:
		update.ActualDay = intPtr(1)
		update.SelectedDay = intPtr(1)
		update.ResetProgress = true
	}
	return update, true
}

func intPtr(i int) *int { return &i }

// Listener is told about every check that changed state.
type Listener func(Result)

// Engine reads user state, decides, and applies the outcome through the store.
type Engine struct {
	store     storage.Provider
	loc       *time.Location
	listeners []Listener
}

func NewEngine(store storage.Provider, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{store: store, loc: loc}
}

// Location returns the timezone calendar dates are computed in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// OnChange registers a listener for advanced, reset and finished results.
func (e *Engine) OnChange(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Check runs one rollover check for username at now.
// A failed write leaves the stored timestamp untouched, so the next check re-evaluates.
func (e *Engine) Check(username string, now time.Time) (Result, error) {
	state, err := e.store.GetUserState(username)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load state for %s: %w", username, err)
	}

	progress, err := e.store.GetDayProgress(username, clampDay(state.ActualDay))
	if err != nil {
		return Result{}, fmt.Errorf("failed to load day %d for %s: %w", state.ActualDay, username, err)
	}

	decision := Decide(state, progress, now, e.loc)
	result := Result{Decision: decision, Username: username, CheckedAt: now}

	update, ok := decision.Update(now)
	if !ok {
		return result, nil
	}

	won, err := e.store.ApplyRollover(username, state.LastCheck, update)
	if err != nil {
		return Result{}, fmt.Errorf("failed to apply rollover for %s: %w", username, err)
	}
	if !won {
		result.Action = ActionSkipped
		result.NewActualDay = state.ActualDay
		result.NewSelectedDay = state.SelectedDay
		logger.Debug("Rollover check lost to a concurrent check", "user", username)
		return result, nil
	}

	logger.Debug("Rollover check", "user", username, "action", result.Action, "daysPassed", result.DaysPassed)
	if result.Changed() || result.Action == ActionFinished {
		logger.Info("Rollover applied", "user", username, "action", result.Action,
			"from", result.PrevActualDay, "to", result.NewActualDay)
		for _, l := range e.listeners {
			l(result)
		}
	}
	return result, nil
}

// clampDay keeps a corrupt stored counter from turning every check into a validation error.
func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > constants.ProgramDays {
		return constants.ProgramDays
	}
	return day
}

// TimeUntilRollover returns how long until the next local midnight in loc.
func TimeUntilRollover(now time.Time, loc *time.Location) time.Duration {
	return utils.TimeUntilMidnight(now, loc)
}

// CountdownMessage is the status line shown until the next rollover.
func CountdownMessage(state models.UserState, progress models.DayProgress, now time.Time, loc *time.Location) string {
	remaining := utils.FormatCountdown(TimeUntilRollover(now, loc))
	if models.IsComplete(progress) {
		if state.ActualDay >= constants.ProgramDays {
			return "Final day complete! The challenge ends at midnight."
		}
		return "Level Complete! You will advance at midnight (" + remaining + ")"
	}
	return "System Reset in " + remaining
}
