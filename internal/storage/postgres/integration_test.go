package postgres

import (
	"os"
	"testing"
	"time"

	apperrors "github.com/julianstephens/hard75/internal/errors"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/storage"
)

// TestStore_Integration runs against a real database.
// Example: HARD75_TEST_POSTGRES="postgres://hard75@localhost:5432/hard75_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("HARD75_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("HARD75_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	username := "pg_it_user"
	_ = store.DeleteUser(username)
	defer store.DeleteUser(username)

	t.Run("Users", func(t *testing.T) {
		_, created, err := store.CreateUser(models.User{Username: username, CreatedAt: time.Now()})
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if !created {
			t.Error("expected user to be created")
		}
		if _, err := store.GetUser("pg_missing_user"); !apperrors.IsNotFound(err) {
			t.Errorf("GetUser(missing) error = %v, want not found", err)
		}
	})

	t.Run("UserState", func(t *testing.T) {
		state, err := store.GetUserState(username)
		if err != nil {
			t.Fatalf("GetUserState failed: %v", err)
		}
		if state.ActualDay != 1 || state.LastCheck != nil {
			t.Errorf("default state = %+v", state)
		}

		day := 4
		updated, err := store.UpdateUserState(username, models.UserStatePatch{SelectedDay: &day})
		if err != nil {
			t.Fatalf("UpdateUserState failed: %v", err)
		}
		if updated.SelectedDay != 4 {
			t.Errorf("SelectedDay = %d, want 4", updated.SelectedDay)
		}
	})

	t.Run("DayProgress", func(t *testing.T) {
		done := true
		p, err := store.UpsertDayProgress(username, 1, models.DayProgressPatch{Sleep: &done})
		if err != nil {
			t.Fatalf("UpsertDayProgress failed: %v", err)
		}
		if !p.Sleep || p.ID == "" {
			t.Errorf("UpsertDayProgress() = %+v", p)
		}

		rows, err := store.ListDayProgress(username)
		if err != nil {
			t.Fatalf("ListDayProgress failed: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("ListDayProgress() returned %d rows, want 1", len(rows))
		}
	})

	t.Run("ApplyRollover", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		ok, err := store.ApplyRollover(username, nil, storage.RolloverUpdate{LastCheck: now})
		if err != nil || !ok {
			t.Fatalf("ApplyRollover = %v, %v", ok, err)
		}

		ok, err = store.ApplyRollover(username, nil, storage.RolloverUpdate{LastCheck: now.Add(time.Hour)})
		if err != nil {
			t.Fatalf("ApplyRollover error: %v", err)
		}
		if ok {
			t.Error("stale ApplyRollover should lose")
		}

		one := 1
		ok, err = store.ApplyRollover(username, &now, storage.RolloverUpdate{
			LastCheck: now.Add(48 * time.Hour), ActualDay: &one, SelectedDay: &one, ResetProgress: true,
		})
		if err != nil || !ok {
			t.Fatalf("reset ApplyRollover = %v, %v", ok, err)
		}
		rows, _ := store.ListDayProgress(username)
		if len(rows) != 0 {
			t.Errorf("reset left %d rows", len(rows))
		}
	})
}
