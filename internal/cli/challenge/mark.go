package challenge

import (
	"fmt"

	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/models"
)

type MarkCmd struct {
	Habit string `arg:"" help:"Habit key (workout1, workout2, diet, water, reading, sleep, photo) or its number 1-7."`
	Day   int    `help:"Day to mark (defaults to the selected day)."`
	Off   bool   `help:"Uncheck the habit instead."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	key, err := models.ParseHabitKey(c.Habit)
	if err != nil {
		return err
	}
	username, state, err := ctx.CheckIn()
	if err != nil {
		return err
	}
	day := c.Day
	if day == 0 {
		day = state.SelectedDay
	}

	var patch models.DayProgressPatch
	patch.SetHabit(key, !c.Off)
	p, err := ctx.Service.UpdateProgress(username, day, patch)
	if err != nil {
		return err
	}

	verb := "Checked"
	if c.Off {
		verb = "Unchecked"
	}
	fmt.Printf("✓ %s %q on day %d\n", verb, state.Labels().Label(key), day)
	if models.IsComplete(p) && day == state.ActualDay {
		fmt.Println("All habits done. You will advance at midnight.")
	}
	return nil
}

type ReflectCmd struct {
	Text string `arg:"" help:"Reflection text. Pass an empty string to clear it."`
	Day  int    `help:"Day to annotate (defaults to the selected day)."`
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	username, state, err := ctx.CheckIn()
	if err != nil {
		return err
	}
	day := c.Day
	if day == 0 {
		day = state.SelectedDay
	}

	text := c.Text
	if _, err := ctx.Service.UpdateProgress(username, day, models.DayProgressPatch{Reflection: &text}); err != nil {
		return err
	}
	fmt.Printf("✓ Saved reflection for day %d\n", day)
	return nil
}
