package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hard75/internal/cli"
	apperrors "github.com/julianstephens/hard75/internal/errors"
	"github.com/julianstephens/hard75/internal/models"
)

// LabelsCmd lists or customizes the display names of the seven habits.
type LabelsCmd struct {
	Set      []string `help:"Rename a habit, as key=label (repeatable). Keys may also be numbers 1-7." sep:"none"`
	Defaults bool     `help:"Restore the default labels."`
}

func (c *LabelsCmd) Run(ctx *cli.Context) error {
	username, err := ctx.User()
	if err != nil {
		return err
	}

	if c.Defaults && len(c.Set) > 0 {
		return apperrors.Validationf("--defaults cannot be combined with --set")
	}

	var state models.UserState
	switch {
	case c.Defaults:
		state, err = ctx.Service.ResetLabels(username)
		if err != nil {
			return fmt.Errorf("failed to reset labels: %w", err)
		}
		fmt.Println("✓ Restored default labels.")
	case len(c.Set) > 0:
		labels, err := parseAssignments(c.Set)
		if err != nil {
			return err
		}
		state, err = ctx.Service.SetLabels(username, labels)
		if err != nil {
			return fmt.Errorf("failed to save labels: %w", err)
		}
		fmt.Printf("✓ Updated %d label(s).\n", len(labels))
	default:
		state, err = ctx.Service.GetSettings(username)
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
	}

	printLabels(state)
	return nil
}

func parseAssignments(pairs []string) (models.HabitLabels, error) {
	labels := models.HabitLabels{}
	for _, pair := range pairs {
		rawKey, label, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, apperrors.Validationf("invalid label %q: expected key=label", pair)
		}
		key, err := models.ParseHabitKey(rawKey)
		if err != nil {
			return nil, apperrors.Validationf("invalid label %q: %v", pair, err)
		}
		labels[key] = label
	}
	return labels, nil
}

func printLabels(state models.UserState) {
	labels := state.Labels()
	fmt.Println("Habit labels:")
	for i, k := range models.HabitKeys {
		marker := " "
		if labels.Label(k) != models.DefaultHabitLabels[k] {
			marker = "*"
		}
		fmt.Printf("  %d. %-10s %s %s\n", i+1, k, marker, labels.Label(k))
	}
	fmt.Println("\n  * customized")
}
