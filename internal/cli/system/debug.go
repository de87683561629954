package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/hard75/internal/cli"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show database path."`
	DumpState    DebugDumpStateCmd    `cmd:"" help:"Dump the selected user's settings as JSON."`
	DumpProgress DebugDumpProgressCmd `cmd:"" help:"Dump the selected user's day progress as JSON."`
	Users        DebugUsersCmd        `cmd:"" help:"List all users as JSON."`
}

func printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpStateCmd struct{}

func (cmd *DebugDumpStateCmd) Run(ctx *cli.Context) error {
	username, err := ctx.User()
	if err != nil {
		return err
	}
	state, err := ctx.Service.GetSettings(username)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(state)
}

type DebugDumpProgressCmd struct {
	Day int `help:"Only dump this day (1-75)."`
}

func (cmd *DebugDumpProgressCmd) Run(ctx *cli.Context) error {
	username, err := ctx.User()
	if err != nil {
		return err
	}
	if cmd.Day != 0 {
		p, err := ctx.Service.GetProgress(username, cmd.Day)
		if err != nil {
			return fmt.Errorf("failed to get day %d: %w", cmd.Day, err)
		}
		return printJSON(p)
	}
	// Only stored rows, unlike the default-filled list the API returns.
	rows, err := ctx.Store.ListDayProgress(username)
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}
	return printJSON(rows)
}

type DebugUsersCmd struct{}

func (cmd *DebugUsersCmd) Run(ctx *cli.Context) error {
	users, err := ctx.Service.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	return printJSON(users)
}
