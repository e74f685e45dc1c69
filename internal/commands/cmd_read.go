package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/inbox"
)

type ReadCmd struct {
	flags *Flags
	app   *inbox.App

	all bool
}

// NewReadCmd creates a new read command
func NewReadCmd(flags *Flags, app *inbox.App) *ReadCmd {
	return &ReadCmd{flags: flags, app: app}
}

// Register adds the read command to the application
func (cmd *ReadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "read",
		Usage:     "Mark notifications as read",
		UsageText: "inbox read <id>...\n   inbox read --all",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "mark every notification as read",
				Destination: &cmd.all,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReadCmd) run(_ context.Context, c *cli.Command) error {
	ids := c.Args().Slice()

	if cmd.all {
		if len(ids) > 0 {
			return fmt.Errorf("--all cannot be combined with notification IDs")
		}
		cmd.app.Store.MarkAllAsRead()
		_, err := fmt.Fprintln(c.Root().Writer, "marked all notifications as read")
		return err
	}

	if len(ids) == 0 {
		return fmt.Errorf("at least one notification ID is required (or use --all)")
	}

	var missing []string
	for _, id := range ids {
		if _, ok := cmd.app.Store.Get(id); !ok {
			missing = append(missing, id)
			continue
		}
		cmd.app.Store.MarkAsRead(id)
	}

	if len(missing) > 0 {
		return fmt.Errorf("notification not found: %s", strings.Join(missing, ", "))
	}

	return nil
}
