package models

import "testing"

func completeDay(day int) DayProgress {
	p := NewDayProgress("alice", day)
	for _, k := range HabitKeys {
		p.SetDone(k, true)
	}
	return p
}

func TestIsComplete(t *testing.T) {
	p := completeDay(1)
	if !IsComplete(p) {
		t.Fatal("all habits checked should be complete")
	}

	for _, k := range HabitKeys {
		t.Run(string(k), func(t *testing.T) {
			q := completeDay(1)
			q.SetDone(k, false)
			if IsComplete(q) {
				t.Errorf("day missing %s should be incomplete", k)
			}
			if q.CompletedCount() != len(HabitKeys)-1 {
				t.Errorf("CompletedCount() = %d", q.CompletedCount())
			}
		})
	}

	empty := NewDayProgress("alice", 1)
	empty.Reflection = "long essay"
	if IsComplete(empty) {
		t.Error("reflection alone must not make a day complete")
	}
}

func TestDayProgressPatch(t *testing.T) {
	p := NewDayProgress("alice", 4)
	p.Diet = true

	var patch DayProgressPatch
	if !patch.IsEmpty() {
		t.Fatal("zero patch should be empty")
	}

	patch.SetHabit(HabitWater, true)
	note := "felt great"
	patch.Reflection = &note
	if patch.IsEmpty() {
		t.Fatal("patch with fields should not be empty")
	}

	patch.Apply(&p)
	if !p.Water || !p.Diet {
		t.Errorf("Apply() lost or failed to set habits: water=%v diet=%v", p.Water, p.Diet)
	}
	if p.Reflection != note {
		t.Errorf("Apply() reflection = %q", p.Reflection)
	}

	off := DayProgressPatch{}
	off.SetHabit(HabitDiet, false)
	off.Apply(&p)
	if p.Diet {
		t.Error("Apply() should uncheck diet")
	}
	if p.Reflection != note {
		t.Error("Apply() without reflection should keep it")
	}
}
