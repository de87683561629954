package api

import (
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/rollover"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	models.User
	Created bool `json:"created"`
}

// SettingsRequest is the partial settings payload. lastCheck is RFC 3339.
type SettingsRequest struct {
	ActualDay    *int               `json:"actualDay"`
	SelectedDay  *int               `json:"selectedDay"`
	LastCheck    *string            `json:"lastCheck"`
	CustomHabits models.HabitLabels `json:"customHabits"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type CheckResponse struct {
	Action      rollover.Action `json:"action"`
	Message     string          `json:"message"`
	DaysPassed  int             `json:"daysPassed"`
	ActualDay   int             `json:"actualDay"`
	SelectedDay int             `json:"selectedDay"`
	CheckedAt   string          `json:"checkedAt"`
}
