// Package challenge holds the commands that read and edit a user's 75-day program.
package challenge

import (
	"fmt"

	"github.com/julianstephens/hard75/internal/cli"
)

type LoginCmd struct {
	Username string `arg:"" help:"Username (3-20 letters, digits, '_' or '-')."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	user, created, err := ctx.Service.Login(c.Username)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("✓ Created user %s. Day 1 starts now.\n", user.Username)
	} else {
		fmt.Printf("✓ Welcome back, %s.\n", user.Username)
	}
	fmt.Printf("  Use --user %s or export HARD75_USER=%s for later commands.\n", user.Username, user.Username)
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	username, err := ctx.User()
	if err != nil {
		return err
	}
	status, res, err := ctx.Service.Status(username)
	if err != nil {
		return err
	}
	cli.PrintRollover(res)

	fmt.Println(cli.Header(username, status.State))
	fmt.Println(cli.ProgressBar(status.CompletedDays, 40))
	fmt.Println()
	fmt.Printf("Today (day %d):\n", status.State.ActualDay)
	fmt.Print(cli.Checklist(status.State.Labels(), status.Today))
	fmt.Println()
	fmt.Println(status.Message)
	if status.State.SelectedDay != status.State.ActualDay {
		fmt.Printf("Viewing day %d (use 'hard75 select %d' to return to today)\n", status.State.SelectedDay, status.State.ActualDay)
	}
	return nil
}

type CheckCmd struct{}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	username, err := ctx.User()
	if err != nil {
		return err
	}
	res, err := ctx.Service.CheckRollover(username, ctx.Service.Now())
	if err != nil {
		return err
	}
	fmt.Println(cli.RolloverStyle(res.Action).Render(res.Message()))
	fmt.Printf("Actual day: %d, selected day: %d\n", res.NewActualDay, res.NewSelectedDay)
	return nil
}
