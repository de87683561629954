package api

import (
	"net/http"
	"strconv"

	apperrors "github.com/julianstephens/hard75/internal/errors"
	"github.com/julianstephens/hard75/internal/logger"
	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/tracker"
	"github.com/julianstephens/hard75/internal/utils"
)

type UserHandler struct {
	svc *tracker.Service
}

func NewUserHandler(svc *tracker.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		ErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

func pathDay(r *http.Request) (int, error) {
	raw := r.PathValue("day")
	day, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validationf("invalid day number %q", raw)
	}
	return day, nil
}

// Login handles POST /api/auth/login
// Creates the user on first login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, created, err := h.svc.Login(req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	JSONResponse(w, status, LoginResponse{User: user, Created: created})
}

// GetSettings handles GET /api/user/{username}/settings
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.GetSettings(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, state)
}

// UpdateSettings handles POST /api/user/{username}/settings
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	patch := models.UserStatePatch{
		ActualDay:   req.ActualDay,
		SelectedDay: req.SelectedDay,
		HabitLabels: req.CustomHabits,
	}
	if req.LastCheck != nil {
		ts, err := utils.ParseTimestamp(*req.LastCheck)
		if err != nil {
			ErrorResponse(w, http.StatusBadRequest, "lastCheck must be an RFC 3339 timestamp")
			return
		}
		patch.LastCheck = &ts
	}

	state, err := h.svc.UpdateSettings(r.PathValue("username"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, state)
}

// GetAllProgress handles GET /api/user/{username}/progress
// Always returns one entry per program day.
func (h *UserHandler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.GetAllProgress(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, progress)
}

// GetProgress handles GET /api/user/{username}/progress/{day}
func (h *UserHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	day, err := pathDay(r)
	if err != nil {
		writeError(w, err)
		return
	}

	progress, err := h.svc.GetProgress(r.PathValue("username"), day)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, progress)
}

// UpdateProgress handles POST /api/user/{username}/progress/{day}
func (h *UserHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	day, err := pathDay(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch models.DayProgressPatch
	if err := ParseJSONBody(r, &patch); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	progress, err := h.svc.UpdateProgress(r.PathValue("username"), day, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, progress)
}

// Reset handles POST /api/user/{username}/reset
func (h *UserHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetUser(r.PathValue("username")); err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, SuccessResponse{Success: true})
}

// Check handles POST /api/user/{username}/check
// Runs the rollover check against server time.
func (h *UserHandler) Check(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CheckRollover(r.PathValue("username"), h.svc.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, CheckResponse{
		Action:      res.Action,
		Message:     res.Message(),
		DaysPassed:  res.DaysPassed,
		ActualDay:   res.NewActualDay,
		SelectedDay: res.NewSelectedDay,
		CheckedAt:   utils.FormatTimestamp(res.CheckedAt),
	})
}

// Delete handles DELETE /api/user/{username}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUser(r.PathValue("username")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
