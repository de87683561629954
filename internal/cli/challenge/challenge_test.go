package challenge

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/hard75/internal/backup"
	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/storage/sqlite"
)

func setupTestChallengeDB(t *testing.T) (*cli.Context, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := cli.NewContext(store, time.UTC, backup.NewManager(dbPath), "alice")
	if err := (&LoginCmd{Username: "alice"}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return ctx, func() { store.Close() }
}

func TestCommandsRequireUser(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()
	ctx.Username = ""

	cmds := map[string]interface{ Run(*cli.Context) error }{
		"status":   &StatusCmd{},
		"check":    &CheckCmd{},
		"day":      &DayCmd{},
		"mark":     &MarkCmd{Habit: "diet"},
		"reflect":  &ReflectCmd{Text: "x"},
		"select":   &SelectCmd{Day: 2},
		"progress": &ProgressCmd{},
		"reset":    &ResetCmd{Yes: true},
		"delete":   &DeleteUserCmd{Yes: true},
	}
	for name, cmd := range cmds {
		t.Run(name, func(t *testing.T) {
			if err := cmd.Run(ctx); !errors.Is(err, cli.ErrNoUser) {
				t.Errorf("expected ErrNoUser, got %v", err)
			}
		})
	}
}

func TestLoginCmd_InvalidUsername(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	if err := (&LoginCmd{Username: "a!"}).Run(ctx); err == nil {
		t.Error("expected error for invalid username")
	}
}

func TestMarkCmd(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	tests := []struct {
		name    string
		cmd     MarkCmd
		day     int
		key     models.HabitKey
		want    bool
		wantErr bool
	}{
		{name: "by key on selected day", cmd: MarkCmd{Habit: "water"}, day: 1, key: models.HabitWater, want: true},
		{name: "by number", cmd: MarkCmd{Habit: "3"}, day: 1, key: models.HabitDiet, want: true},
		{name: "explicit day", cmd: MarkCmd{Habit: "photo", Day: 5}, day: 5, key: models.HabitPhoto, want: true},
		{name: "uncheck", cmd: MarkCmd{Habit: "water", Off: true}, day: 1, key: models.HabitWater, want: false},
		{name: "unknown habit", cmd: MarkCmd{Habit: "yoga"}, wantErr: true},
		{name: "day out of range", cmd: MarkCmd{Habit: "diet", Day: 76}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MarkCmd.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			p, err := ctx.Service.GetProgress("alice", tt.day)
			if err != nil {
				t.Fatalf("failed to read progress: %v", err)
			}
			if p.Done(tt.key) != tt.want {
				t.Errorf("habit %s on day %d = %v, want %v", tt.key, tt.day, p.Done(tt.key), tt.want)
			}
		})
	}
}

func TestMarkCmd_FollowsSelectedDay(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	if err := (&SelectCmd{Day: 9}).Run(ctx); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := (&MarkCmd{Habit: "reading"}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	p, err := ctx.Service.GetProgress("alice", 9)
	if err != nil {
		t.Fatalf("failed to read progress: %v", err)
	}
	if !p.Reading {
		t.Error("expected reading to be checked on the selected day")
	}

	state, err := ctx.Service.GetSettings("alice")
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	if state.ActualDay != 1 {
		t.Errorf("selecting a day must not move the actual day, got %d", state.ActualDay)
	}
}

func TestSelectCmd_OutOfRange(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	for _, day := range []int{0, 76} {
		if err := (&SelectCmd{Day: day}).Run(ctx); err == nil {
			t.Errorf("expected error selecting day %d", day)
		}
	}
}

func TestReflectCmd(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	if err := (&ReflectCmd{Text: "Felt strong", Day: 2}).Run(ctx); err != nil {
		t.Fatalf("reflect failed: %v", err)
	}
	p, err := ctx.Service.GetProgress("alice", 2)
	if err != nil {
		t.Fatalf("failed to read progress: %v", err)
	}
	if p.Reflection != "Felt strong" {
		t.Errorf("reflection = %q", p.Reflection)
	}

	if err := (&ReflectCmd{Text: "", Day: 2}).Run(ctx); err != nil {
		t.Fatalf("clearing reflection failed: %v", err)
	}
	p, _ = ctx.Service.GetProgress("alice", 2)
	if p.Reflection != "" {
		t.Errorf("expected cleared reflection, got %q", p.Reflection)
	}
}

func TestReadCommands(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	for name, cmd := range map[string]interface{ Run(*cli.Context) error }{
		"status":       &StatusCmd{},
		"check":        &CheckCmd{},
		"day":          &DayCmd{},
		"day explicit": &DayCmd{Day: 40},
		"progress":     &ProgressCmd{},
	} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("%s failed: %v", name, err)
		}
	}
}

func TestResetCmd(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	if err := (&MarkCmd{Habit: "diet"}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if err := (&SelectCmd{Day: 3}).Run(ctx); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if err := (&ResetCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	p, err := ctx.Service.GetProgress("alice", 1)
	if err != nil {
		t.Fatalf("failed to read progress: %v", err)
	}
	if p.CompletedCount() != 0 {
		t.Errorf("expected cleared progress, got %d habits", p.CompletedCount())
	}
	state, err := ctx.Service.GetSettings("alice")
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	if state.ActualDay != 1 || state.SelectedDay != 1 {
		t.Errorf("expected day 1/1 after reset, got %d/%d", state.ActualDay, state.SelectedDay)
	}
}

func TestDeleteUserCmd(t *testing.T) {
	ctx, cleanup := setupTestChallengeDB(t)
	defer cleanup()

	if err := (&DeleteUserCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.Service.GetSettings("alice"); err == nil {
		t.Error("expected deleted user to be gone")
	}
}
