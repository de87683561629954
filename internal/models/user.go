package models

import "time"

// User is the owner of one UserState and up to one DayProgress per program day.
type User struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserState is the per-user program cursor and preferences.
type UserState struct {
	Username    string      `json:"username"`
	ActualDay   int         `json:"actualDay"`   // true position in the program, moved only by rollover
	SelectedDay int         `json:"selectedDay"` // day the UI is showing
	LastCheck   *time.Time  `json:"lastCheck"`   // last time the rollover check observed a new date
	HabitLabels HabitLabels `json:"customHabits"`
}

// NewUserState returns the state of a user who has never been checked.
func NewUserState(username string) UserState {
	return UserState{
		Username:    username,
		ActualDay:   1,
		SelectedDay: 1,
	}
}

// Labels returns the user's labels with defaults applied.
func (s UserState) Labels() HabitLabels {
	return s.HabitLabels.Resolved()
}

// UserStatePatch carries a partial settings update. Nil fields keep their prior value.
type UserStatePatch struct {
	ActualDay   *int        `json:"actualDay,omitempty"`
	SelectedDay *int        `json:"selectedDay,omitempty"`
	LastCheck   *time.Time  `json:"lastCheck,omitempty"`
	HabitLabels HabitLabels `json:"customHabits,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UserStatePatch) IsEmpty() bool {
	return p.ActualDay == nil && p.SelectedDay == nil && p.LastCheck == nil && p.HabitLabels == nil
}

// Apply merges the patch into s.
func (p UserStatePatch) Apply(s *UserState) {
	if p.ActualDay != nil {
		s.ActualDay = *p.ActualDay
	}
	if p.SelectedDay != nil {
		s.SelectedDay = *p.SelectedDay
	}
	if p.LastCheck != nil {
		t := *p.LastCheck
		s.LastCheck = &t
	}
	if p.HabitLabels != nil {
		s.HabitLabels = s.HabitLabels.Merge(p.HabitLabels)
	}
}
