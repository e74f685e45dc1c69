package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/inbox"
	"github.com/hay-kot/inbox/pkg/iojson"
)

type CountCmd struct {
	flags *Flags
	app   *inbox.App

	jsonOutput bool
}

// NewCountCmd creates a new count command
func NewCountCmd(flags *Flags, app *inbox.App) *CountCmd {
	return &CountCmd{flags: flags, app: app}
}

// Register adds the count command to the application
func (cmd *CountCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "count",
		Usage:     "Print the number of unread notifications",
		UsageText: "inbox count [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output unread and total counts as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// Counts is the JSON shape printed by count and watch.
type Counts struct {
	Unread int `json:"unread"`
	Total  int `json:"total"`
}

func (cmd *CountCmd) run(_ context.Context, c *cli.Command) error {
	if cmd.jsonOutput {
		counts := Counts{
			Unread: cmd.app.Store.UnreadCount(),
			Total:  len(cmd.app.Store.Messages()),
		}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, counts)
	}

	_, err := fmt.Fprintln(c.Root().Writer, cmd.app.Store.UnreadCount())
	return err
}
