package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/inbox"
	"github.com/hay-kot/inbox/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	app   *inbox.App

	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *inbox.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show a single notification",
		UsageText: "inbox show [--json] <id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(_ context.Context, c *cli.Command) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one notification ID")
	}

	id := c.Args().First()
	msg, ok := cmd.app.Store.Get(id)
	if !ok {
		return fmt.Errorf("notification %q not found", id)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, msg)
	}

	state := "unread"
	if msg.Read {
		state = "read"
	}

	w := c.Root().Writer
	_, _ = fmt.Fprintf(w, "ID:        %s\n", msg.ID)
	_, _ = fmt.Fprintf(w, "Type:      %s\n", msg.Type)
	_, _ = fmt.Fprintf(w, "Title:     %s\n", msg.Title)
	_, _ = fmt.Fprintf(w, "Created:   %s\n", formatLocal(msg))
	_, _ = fmt.Fprintf(w, "State:     %s\n", state)
	if msg.Content != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", msg.Content)
	}

	return nil
}
