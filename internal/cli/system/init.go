package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/storage"
	"github.com/julianstephens/hard75/internal/storage/postgres"
	"github.com/julianstephens/hard75/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy users and progress from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized hard75 storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	if postgres.IsConnString(ctx.Store.GetConfigPath()) || ctx.Backups == nil {
		return errors.New("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		// Keep a copy of what is about to be deleted.
		if path, err := ctx.Backups.CreateBackup(); err == nil {
			fmt.Printf("Backed up existing database to: %s\n", path)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(source), nil
}

// copyData copies every user with their settings and stored day progress.
func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	src, err := openSource(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	users, err := src.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to list users in source: %w", err)
	}

	days := 0
	for _, u := range users {
		if _, _, err := ctx.Store.CreateUser(u); err != nil {
			return fmt.Errorf("failed to add user %s: %w", u.Username, err)
		}

		state, err := src.GetUserState(u.Username)
		if err != nil {
			return fmt.Errorf("failed to read settings for %s: %w", u.Username, err)
		}
		if _, err := ctx.Store.UpdateUserState(u.Username, statePatch(state)); err != nil {
			return fmt.Errorf("failed to save settings for %s: %w", u.Username, err)
		}

		progress, err := src.ListDayProgress(u.Username)
		if err != nil {
			return fmt.Errorf("failed to read progress for %s: %w", u.Username, err)
		}
		for _, p := range progress {
			if _, err := ctx.Store.UpsertDayProgress(u.Username, p.DayNumber, progressPatch(p)); err != nil {
				return fmt.Errorf("failed to save day %d for %s: %w", p.DayNumber, u.Username, err)
			}
			days++
		}
	}
	fmt.Printf("  Copied %d users and %d days of progress\n", len(users), days)
	return nil
}

func statePatch(s models.UserState) models.UserStatePatch {
	actual, selected := s.ActualDay, s.SelectedDay
	return models.UserStatePatch{
		ActualDay:   &actual,
		SelectedDay: &selected,
		LastCheck:   s.LastCheck,
		HabitLabels: s.HabitLabels,
	}
}

func progressPatch(p models.DayProgress) models.DayProgressPatch {
	var patch models.DayProgressPatch
	for _, k := range models.HabitKeys {
		patch.SetHabit(k, p.Done(k))
	}
	reflection := p.Reflection
	patch.Reflection = &reflection
	return patch
}
