package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hard75/internal/models"
	"github.com/julianstephens/hard75/internal/validation"
)

type ReflectionFormModel struct {
	Day  int
	Text string
}

// LabelsFormModel holds one label per habit, in models.HabitKeys order.
type LabelsFormModel struct {
	Labels []string
}

type ConfirmFormModel struct {
	Confirmed bool
}

func NewReflectionForm(fm *ReflectionFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(fmt.Sprintf("Reflection for day %d", fm.Day)).
				Description("How did today go? Leave empty to clear.").
				Value(&fm.Text),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewLabelsForm(fm *LabelsFormModel) *huh.Form {
	fields := make([]huh.Field, len(models.HabitKeys))
	for i, k := range models.HabitKeys {
		fields[i] = huh.NewInput().
			Title(fmt.Sprintf("%d. %s", i+1, k)).
			Placeholder(models.DefaultHabitLabels[k]).
			Value(&fm.Labels[i]).
			Validate(func(s string) error {
				return validation.ValidateLabels(models.HabitLabels{k: s})
			})
	}
	return huh.NewForm(
		huh.NewGroup(fields...).Description("Empty labels restore the default."),
	).WithTheme(huh.ThemeDracula())
}

func NewConfirmResetForm(fm *ConfirmFormModel, username string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Reset all progress for %s?", username)).
				Description("Every checklist and reflection is deleted and the program restarts at day 1.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
