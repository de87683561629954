package models

import "time"

// DayProgress is the completion record of one program day for one user.
type DayProgress struct {
	ID         string     `json:"id,omitempty"`
	Username   string     `json:"username"`
	DayNumber  int        `json:"dayNumber"`
	Workout1   bool       `json:"workout1"`
	Workout2   bool       `json:"workout2"`
	Diet       bool       `json:"diet"`
	Water      bool       `json:"water"`
	Reading    bool       `json:"reading"`
	Sleep      bool       `json:"sleep"`
	Photo      bool       `json:"photo"`
	Reflection string     `json:"reflection"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// NewDayProgress returns the default (untouched) record for a day.
func NewDayProgress(username string, day int) DayProgress {
	return DayProgress{Username: username, DayNumber: day}
}

func (p *DayProgress) field(key HabitKey) *bool {
	switch key {
	case HabitWorkout1:
		return &p.Workout1
	case HabitWorkout2:
		return &p.Workout2
	case HabitDiet:
		return &p.Diet
	case HabitWater:
		return &p.Water
	case HabitReading:
		return &p.Reading
	case HabitSleep:
		return &p.Sleep
	case HabitPhoto:
		return &p.Photo
	}
	return nil
}

// Done reports whether the habit was checked off.
func (p DayProgress) Done(key HabitKey) bool {
	if f := p.field(key); f != nil {
		return *f
	}
	return false
}

// SetDone checks or unchecks a habit. Unknown keys are ignored.
func (p *DayProgress) SetDone(key HabitKey, done bool) {
	if f := p.field(key); f != nil {
		*f = done
	}
}

// CompletedCount returns how many of the habits are checked off.
func (p DayProgress) CompletedCount() int {
	n := 0
	for _, k := range HabitKeys {
		if p.Done(k) {
			n++
		}
	}
	return n
}

// IsComplete is true iff every habit is checked off. The reflection is ignored.
func IsComplete(p DayProgress) bool {
	return p.CompletedCount() == len(HabitKeys)
}

// DayProgressPatch carries a partial update. Nil fields keep their prior value.
type DayProgressPatch struct {
	Workout1   *bool   `json:"workout1,omitempty"`
	Workout2   *bool   `json:"workout2,omitempty"`
	Diet       *bool   `json:"diet,omitempty"`
	Water      *bool   `json:"water,omitempty"`
	Reading    *bool   `json:"reading,omitempty"`
	Sleep      *bool   `json:"sleep,omitempty"`
	Photo      *bool   `json:"photo,omitempty"`
	Reflection *string `json:"reflection,omitempty"`
}

// SetHabit records a habit toggle in the patch.
func (pp *DayProgressPatch) SetHabit(key HabitKey, done bool) {
	v := done
	switch key {
	case HabitWorkout1:
		pp.Workout1 = &v
	case HabitWorkout2:
		pp.Workout2 = &v
	case HabitDiet:
		pp.Diet = &v
	case HabitWater:
		pp.Water = &v
	case HabitReading:
		pp.Reading = &v
	case HabitSleep:
		pp.Sleep = &v
	case HabitPhoto:
		pp.Photo = &v
	}
}

// IsEmpty reports whether the patch changes nothing.
func (pp DayProgressPatch) IsEmpty() bool {
	return pp.Workout1 == nil && pp.Workout2 == nil && pp.Diet == nil && pp.Water == nil &&
		pp.Reading == nil && pp.Sleep == nil && pp.Photo == nil && pp.Reflection == nil
}

// Apply merges the patch into p.
func (pp DayProgressPatch) Apply(p *DayProgress) {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Workout1, pp.Workout1)
	set(&p.Workout2, pp.Workout2)
	set(&p.Diet, pp.Diet)
	set(&p.Water, pp.Water)
	set(&p.Reading, pp.Reading)
	set(&p.Sleep, pp.Sleep)
	set(&p.Photo, pp.Photo)
	if pp.Reflection != nil {
		p.Reflection = *pp.Reflection
	}
}
