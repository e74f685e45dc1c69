package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/inbox"
)

type ClearCmd struct {
	flags *Flags
	app   *inbox.App
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *inbox.App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Remove every notification",
		UsageText: "inbox clear",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(_ context.Context, c *cli.Command) error {
	n := len(cmd.app.Store.Messages())
	cmd.app.Store.ClearAll()
	_, err := fmt.Fprintf(c.Root().Writer, "cleared %d notification(s)\n", n)
	return err
}
