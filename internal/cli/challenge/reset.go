package challenge

import (
	"fmt"

	"github.com/julianstephens/hard75/internal/cli"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Reset without asking for confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	username, err := ctx.User()
	if err != nil {
		return err
	}

	ok, err := cli.Confirm(
		fmt.Sprintf("Reset all progress for %s?", username),
		"Every day's checklist and reflection is deleted and the program restarts at day 1. Custom labels are kept.",
		c.Yes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Reset cancelled.")
		return nil
	}

	if err := ctx.Service.ResetUser(username); err != nil {
		return err
	}
	fmt.Println("✓ Progress reset. Back to day 1.")
	return nil
}

type DeleteUserCmd struct {
	Yes bool `short:"y" help:"Delete without asking for confirmation."`
}

func (c *DeleteUserCmd) Run(ctx *cli.Context) error {
	username, err := ctx.User()
	if err != nil {
		return err
	}

	ok, err := cli.Confirm(
		fmt.Sprintf("Delete user %s?", username),
		"The user, their settings and all progress are removed permanently.",
		c.Yes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Service.DeleteUser(username); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted user %s\n", username)
	return nil
}
