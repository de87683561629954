package challenge

import (
	"fmt"

	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/models"
)

type DayCmd struct {
	Day int `arg:"" optional:"" help:"Day to show (defaults to the selected day)."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	username, state, err := ctx.CheckIn()
	if err != nil {
		return err
	}
	day := c.Day
	if day == 0 {
		day = state.SelectedDay
	}

	p, err := ctx.Service.GetProgress(username, day)
	if err != nil {
		return err
	}
	printDay(state, p)
	return nil
}

func printDay(state models.UserState, p models.DayProgress) {
	title := fmt.Sprintf("Day %d", p.DayNumber)
	switch {
	case p.DayNumber == state.ActualDay:
		title += " (today)"
	case p.DayNumber > state.ActualDay:
		title += " (upcoming)"
	}
	fmt.Printf("%s: %d/%d complete\n", title, p.CompletedCount(), len(models.HabitKeys))
	fmt.Print(cli.Checklist(state.Labels(), p))
}

// SelectCmd moves the viewport. It never changes the actual day.
type SelectCmd struct {
	Day int `arg:"" help:"Day to select (1-75)."`
}

func (c *SelectCmd) Run(ctx *cli.Context) error {
	username, _, err := ctx.CheckIn()
	if err != nil {
		return err
	}
	state, err := ctx.Service.SelectDay(username, c.Day)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Selected day %d (actual day %d)\n", state.SelectedDay, state.ActualDay)
	return nil
}

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	username, state, err := ctx.CheckIn()
	if err != nil {
		return err
	}
	all, err := ctx.Service.GetAllProgress(username)
	if err != nil {
		return err
	}

	fmt.Println(cli.Header(username, state))
	fmt.Print(cli.ProgressGrid(all, state.ActualDay, state.SelectedDay))
	fmt.Println("[n] actual day · underlined: selected · green: complete · orange: started")
	return nil
}
