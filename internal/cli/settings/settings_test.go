package settings

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := cli.NewContext(store, time.UTC, nil, "alice")
	if _, _, err := ctx.Service.Login("alice"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func TestLabelsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&LabelsCmd{}).Run(ctx); err != nil {
		t.Fatalf("LabelsCmd.Run() failed: %v", err)
	}
}

func TestLabelsCmd_Set(t *testing.T) {
	tests := []struct {
		name    string
		set     []string
		want    map[models.HabitKey]string
		wantErr bool
	}{
		{
			name: "by key",
			set:  []string{"water=Gallon of water"},
			want: map[models.HabitKey]string{models.HabitWater: "Gallon of water"},
		},
		{
			name: "by number with = in label",
			set:  []string{"1=Run a=b", "task5=10 pages"},
			want: map[models.HabitKey]string{
				models.HabitWorkout1: "Run a=b",
				models.HabitReading:  "10 pages",
			},
		},
		{
			name: "empty label restores default",
			set:  []string{"diet="},
			want: map[models.HabitKey]string{models.HabitDiet: models.DefaultHabitLabels[models.HabitDiet]},
		},
		{
			name:    "missing separator",
			set:     []string{"water"},
			wantErr: true,
		},
		{
			name:    "unknown habit",
			set:     []string{"yoga=Stretch"},
			wantErr: true,
		},
		{
			name:    "label too long",
			set:     []string{"photo=" + strings.Repeat("x", 101)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := setupTestDB(t)
			defer cleanup()

			err := (&LabelsCmd{Set: tt.set}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LabelsCmd.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			state, err := ctx.Service.GetSettings("alice")
			if err != nil {
				t.Fatalf("failed to get settings: %v", err)
			}
			for k, want := range tt.want {
				if got := state.Labels().Label(k); got != want {
					t.Errorf("label %s = %q, want %q", k, got, want)
				}
			}
		})
	}
}

func TestLabelsCmd_Defaults(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&LabelsCmd{Set: []string{"sleep=8 hours"}}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := (&LabelsCmd{Defaults: true}).Run(ctx); err != nil {
		t.Fatalf("defaults failed: %v", err)
	}

	state, err := ctx.Service.GetSettings("alice")
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if got := state.Labels().Label(models.HabitSleep); got != models.DefaultHabitLabels[models.HabitSleep] {
		t.Errorf("expected default sleep label, got %q", got)
	}
}

func TestLabelsCmd_DefaultsWithSet(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&LabelsCmd{Defaults: true, Set: []string{"sleep=x"}}).Run(ctx); err == nil {
		t.Error("expected error combining --defaults and --set")
	}
}
