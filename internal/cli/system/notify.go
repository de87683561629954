package system

import (
	"fmt"

	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/notifier"
)

// NotifyCmd runs a rollover check and pushes the day's countdown to the tray app.
// It is meant to be run from cron or a systemd timer.
type NotifyCmd struct {
	Message string `arg:"" optional:"" help:"Text to send instead of the countdown."`
	DryRun  bool   `help:"Print the notification instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	msg := c.Message
	if msg == "" {
		username, err := ctx.User()
		if err != nil {
			return err
		}
		// A rollover that changes state is announced by the engine listener.
		status, _, err := ctx.Service.Status(username)
		if err != nil {
			return err
		}
		msg = fmt.Sprintf("Day %d: %s", status.State.ActualDay, status.Message)
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}

	if err := notifier.New().Notify(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
