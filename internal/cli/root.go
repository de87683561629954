package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hard75/internal/backup"
	"github.com/julianstephens/hard75/internal/constants"
	"github.com/julianstephens/hard75/internal/logger"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/rollover"
	"github.com/julianstephens/hard75/internal/storage"
	"github.com/julianstephens/hard75/internal/tracker"
	"github.com/julianstephens/hard75/internal/validation"
)

// ErrNoUser is returned by commands that act on a user when none was given.
var ErrNoUser = errors.New("no user selected: pass --user or set " + constants.EnvUser)

type Context struct {
	Store   storage.Provider
	Service *tracker.Service
	// Backups is nil when the store is not a SQLite file.
	Backups  *backup.Manager
	Username string
}

// NewContext wires the tracker service for store. backups may be nil.
func NewContext(store storage.Provider, loc *time.Location, backups *backup.Manager, username string) *Context {
	svc := tracker.NewService(store, rollover.NewEngine(store, loc))
	if backups != nil {
		svc.SetBackuper(backups)
	}
	return &Context{
		Store:    store,
		Service:  svc,
		Backups:  backups,
		Username: username,
	}
}

// User returns the selected username after validating it.
func (c *Context) User() (string, error) {
	if c.Username == "" {
		return "", ErrNoUser
	}
	if err := validation.ValidateUsername(c.Username); err != nil {
		return "", err
	}
	return c.Username, nil
}

// CheckIn selects the user, runs the rollover check and returns the resulting state.
// Every command that reads or edits progress starts here.
func (c *Context) CheckIn() (string, models.UserState, error) {
	username, err := c.User()
	if err != nil {
		return "", models.UserState{}, err
	}
	res, err := c.Service.CheckRollover(username, c.Service.Now())
	if err != nil {
		return "", models.UserState{}, err
	}
	PrintRollover(res)

	state, err := c.Service.GetSettings(username)
	if err != nil {
		return "", models.UserState{}, err
	}
	return username, state, nil
}

// RequireBackups fails for stores that cannot be snapshotted.
func (c *Context) RequireBackups() (*backup.Manager, error) {
	if c.Backups == nil {
		return nil, errors.New("backups are only supported for SQLite databases")
	}
	return c.Backups, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Backups == nil {
		return
	}
	if _, err := c.Backups.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// PrintRollover reports a rollover result when it changed something worth mentioning.
func PrintRollover(res rollover.Result) {
	switch res.Action {
	case rollover.ActionAdvanced, rollover.ActionReset, rollover.ActionFinished, rollover.ActionClockSkew:
		fmt.Println(RolloverStyle(res.Action).Render(res.Message()))
	}
}
