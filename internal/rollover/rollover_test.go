package rollover

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/storage/sqlite"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func stateAt(day int, lastCheck *time.Time) models.UserState {
	s := models.NewUserState("alice")
	s.ActualDay = day
	s.SelectedDay = day
	s.LastCheck = lastCheck
	return s
}

func complete(day int) models.DayProgress {
	p := models.NewDayProgress("alice", day)
	for _, k := range models.HabitKeys {
		p.SetDone(k, true)
	}
	return p
}

func incomplete(day int) models.DayProgress {
	p := complete(day)
	p.Photo = false
	return p
}

func TestDecide(t *testing.T) {
	jan1 := date(2024, 1, 1, 20)

	tests := []struct {
		name         string
		state        models.UserState
		progress     models.DayProgress
		now          time.Time
		wantAction   Action
		wantDays     int
		wantActual   int
		wantSelected int
		wantWrite    bool
	}{
		{
			name:         "first check only writes timestamp",
			state:        stateAt(1, nil),
			progress:     incomplete(1),
			now:          jan1,
			wantAction:   ActionInitialized,
			wantActual:   1,
			wantSelected: 1,
			wantWrite:    true,
		},
		{
			name:         "same date is a no-op",
			state:        stateAt(5, &jan1),
			progress:     incomplete(5),
			now:          date(2024, 1, 1, 23),
			wantAction:   ActionNone,
			wantActual:   5,
			wantSelected: 5,
		},
		{
			name:         "one day incomplete resets",
			state:        stateAt(5, &jan1),
			progress:     incomplete(5),
			now:          date(2024, 1, 2, 0),
			wantAction:   ActionReset,
			wantDays:     1,
			wantActual:   1,
			wantSelected: 1,
			wantWrite:    true,
		},
		{
			name:         "one day complete advances and snaps selection",
			state:        stateAt(5, &jan1),
			progress:     complete(5),
			now:          date(2024, 1, 2, 8),
			wantAction:   ActionAdvanced,
			wantDays:     1,
			wantActual:   6,
			wantSelected: 6,
			wantWrite:    true,
		},
		{
			name:         "multi-day gap resets even when complete",
			state:        stateAt(5, &jan1),
			progress:     complete(5),
			now:          date(2024, 1, 5, 8),
			wantAction:   ActionReset,
			wantDays:     4,
			wantActual:   1,
			wantSelected: 1,
			wantWrite:    true,
		},
		{
			name:         "terminal day does not advance",
			state:        stateAt(75, &jan1),
			progress:     complete(75),
			now:          date(2024, 1, 2, 8),
			wantAction:   ActionFinished,
			wantDays:     1,
			wantActual:   75,
			wantSelected: 75,
			wantWrite:    true,
		},
		{
			name:         "terminal day incomplete still resets",
			state:        stateAt(75, &jan1),
			progress:     incomplete(75),
			now:          date(2024, 1, 2, 8),
			wantAction:   ActionReset,
			wantDays:     1,
			wantActual:   1,
			wantSelected: 1,
			wantWrite:    true,
		},
		{
			name:         "clock moved backwards changes nothing",
			state:        stateAt(5, &jan1),
			progress:     incomplete(5),
			now:          date(2023, 12, 31, 12),
			wantAction:   ActionClockSkew,
			wantDays:     -1,
			wantActual:   5,
			wantSelected: 5,
			wantWrite:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.state, tt.progress, tt.now, time.UTC)
			if d.Action != tt.wantAction {
				t.Errorf("Action = %s, want %s", d.Action, tt.wantAction)
			}
			if d.DaysPassed != tt.wantDays {
				t.Errorf("DaysPassed = %d, want %d", d.DaysPassed, tt.wantDays)
			}
			if d.NewActualDay != tt.wantActual || d.NewSelectedDay != tt.wantSelected {
				t.Errorf("days = %d/%d, want %d/%d", d.NewActualDay, d.NewSelectedDay, tt.wantActual, tt.wantSelected)
			}
			if d.WriteTimestamp != tt.wantWrite {
				t.Errorf("WriteTimestamp = %v, want %v", d.WriteTimestamp, tt.wantWrite)
			}
		})
	}
}

func TestDecideSelectedDayIgnored(t *testing.T) {
	jan1 := date(2024, 1, 1, 20)
	s := stateAt(5, &jan1)
	s.SelectedDay = 2

	d := Decide(s, complete(5), date(2024, 1, 2, 8), time.UTC)
	if d.Action != ActionAdvanced || d.NewActualDay != 6 {
		t.Errorf("selectedDay influenced the decision: %+v", d)
	}
}

func TestDecideUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 20:00 UTC Jan 1 is already Jan 2 in Tokyo; 02:00 UTC Jan 2 is still Jan 2 there.
	last := date(2024, 1, 1, 20)
	d := Decide(stateAt(3, &last), incomplete(3), date(2024, 1, 2, 2), tokyo)
	if d.Action != ActionNone {
		t.Errorf("Action = %s, want none for the same Tokyo date", d.Action)
	}
	d = Decide(stateAt(3, &last), incomplete(3), date(2024, 1, 2, 2), time.UTC)
	if d.Action != ActionReset {
		t.Errorf("Action = %s, want reset across the UTC date", d.Action)
	}
}

func TestDecideAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	for _, tc := range []struct {
		name string
		last time.Time
		now  time.Time
	}{
		{"spring forward", time.Date(2024, 3, 9, 23, 50, 0, 0, ny), time.Date(2024, 3, 10, 23, 50, 0, 0, ny)},
		{"fall back", time.Date(2024, 11, 3, 0, 5, 0, 0, ny), time.Date(2024, 11, 4, 0, 5, 0, 0, ny)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(stateAt(10, &tc.last), complete(10), tc.now, ny)
			if d.DaysPassed != 1 || d.Action != ActionAdvanced {
				t.Errorf("Decide() = %+v, want one day and advance", d)
			}
		})
	}
}

func TestDecisionUpdate(t *testing.T) {
	now := date(2024, 1, 2, 8)

	if _, ok := (Decision{Action: ActionNone}).Update(now); ok {
		t.Error("no-op decision should not produce a write")
	}

	u, ok := (Decision{Action: ActionReset, WriteTimestamp: true}).Update(now)
	if !ok || !u.ResetProgress || *u.ActualDay != 1 || *u.SelectedDay != 1 || !u.LastCheck.Equal(now) {
		t.Errorf("reset update = %+v", u)
	}

	u, ok = (Decision{Action: ActionClockSkew, WriteTimestamp: true}).Update(now)
	if !ok || u.ResetProgress || u.ActualDay != nil || u.SelectedDay != nil {
		t.Errorf("clock skew update = %+v", u)
	}
}

func setupEngine(t *testing.T) (*Engine, *sqlite.Store, func()) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if _, _, err := store.CreateUser(models.User{Username: "alice", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return NewEngine(store, time.UTC), store, func() { store.Close() }
}

func seed(t *testing.T, store *sqlite.Store, actualDay int, lastCheck time.Time, completeDay bool) {
	t.Helper()
	sel := actualDay
	if _, err := store.UpdateUserState("alice", models.UserStatePatch{ActualDay: &actualDay, SelectedDay: &sel, LastCheck: &lastCheck}); err != nil {
		t.Fatalf("failed to seed state: %v", err)
	}
	var patch models.DayProgressPatch
	for _, k := range models.HabitKeys {
		patch.SetHabit(k, completeDay || k != models.HabitPhoto)
	}
	if _, err := store.UpsertDayProgress("alice", actualDay, patch); err != nil {
		t.Fatalf("failed to seed progress: %v", err)
	}
	if actualDay > 1 {
		if _, err := store.UpsertDayProgress("alice", 1, patch); err != nil {
			t.Fatalf("failed to seed progress: %v", err)
		}
	}
}

func TestEngineCheck(t *testing.T) {
	t.Run("first check initializes", func(t *testing.T) {
		engine, store, cleanup := setupEngine(t)
		defer cleanup()

		now := date(2024, 1, 1, 9)
		res, err := engine.Check("alice", now)
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if res.Action != ActionInitialized {
			t.Errorf("Action = %s", res.Action)
		}
		state, _ := store.GetUserState("alice")
		if state.LastCheck == nil || !state.LastCheck.Equal(now) || state.ActualDay != 1 {
			t.Errorf("state after first check = %+v", state)
		}
	})

	t.Run("incomplete day resets everything", func(t *testing.T) {
		engine, store, cleanup := setupEngine(t)
		defer cleanup()
		seed(t, store, 5, date(2024, 1, 1, 12), false)

		res, err := engine.Check("alice", date(2024, 1, 2, 12))
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if res.Action != ActionReset {
			t.Fatalf("Action = %s, want reset", res.Action)
		}
		state, _ := store.GetUserState("alice")
		if state.ActualDay != 1 || state.SelectedDay != 1 {
			t.Errorf("state = %+v", state)
		}
		rows, _ := store.ListDayProgress("alice")
		if len(rows) != 0 {
			t.Errorf("reset left %d rows", len(rows))
		}
	})

	t.Run("complete day advances and keeps progress", func(t *testing.T) {
		engine, store, cleanup := setupEngine(t)
		defer cleanup()
		seed(t, store, 5, date(2024, 1, 1, 12), true)

		res, err := engine.Check("alice", date(2024, 1, 2, 12))
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if res.Action != ActionAdvanced || !res.Changed() {
			t.Fatalf("Action = %s, want advanced", res.Action)
		}
		state, _ := store.GetUserState("alice")
		if state.ActualDay != 6 || state.SelectedDay != 6 {
			t.Errorf("state = %+v", state)
		}
		rows, _ := store.ListDayProgress("alice")
		if len(rows) != 2 {
			t.Errorf("advance touched progress rows: %d", len(rows))
		}
		if !strings.Contains(res.Message(), "day 6") {
			t.Errorf("Message() = %q", res.Message())
		}
	})

	t.Run("idempotent within a date", func(t *testing.T) {
		engine, store, cleanup := setupEngine(t)
		defer cleanup()
		seed(t, store, 5, date(2024, 1, 1, 12), true)

		if _, err := engine.Check("alice", date(2024, 1, 2, 1)); err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		before, _ := store.GetUserState("alice")

		res, err := engine.Check("alice", date(2024, 1, 2, 23))
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if res.Action != ActionNone {
			t.Errorf("second check Action = %s, want none", res.Action)
		}
		after, _ := store.GetUserState("alice")
		if after.ActualDay != before.ActualDay || !after.LastCheck.Equal(*before.LastCheck) {
			t.Errorf("second check changed state: %+v -> %+v", before, after)
		}
	})

	t.Run("clock skew rewrites only the timestamp", func(t *testing.T) {
		engine, store, cleanup := setupEngine(t)
		defer cleanup()
		seed(t, store, 5, date(2024, 1, 3, 12), false)

		now := date(2024, 1, 1, 12)
		res, err := engine.Check("alice", now)
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if res.Action != ActionClockSkew {
			t.Errorf("Action = %s", res.Action)
		}
		state, _ := store.GetUserState("alice")
		if state.ActualDay != 5 || !state.LastCheck.Equal(now) {
			t.Errorf("state = %+v", state)
		}
	})

	t.Run("listeners see state changes", func(t *testing.T) {
		engine, store, cleanup := setupEngine(t)
		defer cleanup()
		seed(t, store, 5, date(2024, 1, 1, 12), true)

		var seen []Result
		engine.OnChange(func(r Result) { seen = append(seen, r) })

		if _, err := engine.Check("alice", date(2024, 1, 2, 12)); err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if _, err := engine.Check("alice", date(2024, 1, 2, 13)); err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if len(seen) != 1 || seen[0].Action != ActionAdvanced {
			t.Errorf("listener calls = %+v", seen)
		}
	})
}

func TestEngineCheckConcurrent(t *testing.T) {
	engine, store, cleanup := setupEngine(t)
	defer cleanup()
	seed(t, store, 5, date(2024, 1, 1, 12), true)

	const workers = 6
	var wg sync.WaitGroup
	results := make(chan Result, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := engine.Check("alice", date(2024, 1, 2, 12).Add(time.Duration(i)*time.Minute))
			if err != nil {
				t.Errorf("Check failed: %v", err)
				return
			}
			results <- res
		}(i)
	}
	wg.Wait()
	close(results)

	advanced := 0
	for r := range results {
		if r.Action == ActionAdvanced {
			advanced++
		}
	}
	if advanced != 1 {
		t.Errorf("%d checks advanced, want exactly 1", advanced)
	}
	state, _ := store.GetUserState("alice")
	if state.ActualDay != 6 {
		t.Errorf("actualDay = %d, want 6", state.ActualDay)
	}
}

func TestCountdownMessage(t *testing.T) {
	now := date(2024, 1, 1, 22)
	s := stateAt(5, nil)

	if msg := CountdownMessage(s, complete(5), now, time.UTC); !strings.HasPrefix(msg, "Level Complete!") || !strings.Contains(msg, "2h 0m 0s") {
		t.Errorf("complete message = %q", msg)
	}
	if msg := CountdownMessage(s, incomplete(5), now, time.UTC); msg != "System Reset in 2h 0m 0s" {
		t.Errorf("incomplete message = %q", msg)
	}
	if d := TimeUntilRollover(now, time.UTC); d != 2*time.Hour {
		t.Errorf("TimeUntilRollover() = %v", d)
	}
}
