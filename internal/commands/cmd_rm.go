package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/inbox"
)

type RmCmd struct {
	flags *Flags
	app   *inbox.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *inbox.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "rm",
		Usage:       "Remove notifications",
		UsageText:   "inbox rm <id>...",
		Description: "Removes each listed notification. Unknown IDs are reported after the known ones are removed.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(_ context.Context, c *cli.Command) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one notification ID is required")
	}

	var missing []string
	for _, id := range ids {
		if _, ok := cmd.app.Store.Get(id); !ok {
			missing = append(missing, id)
			continue
		}
		cmd.app.Store.Remove(id)
		_, _ = fmt.Fprintf(c.Root().Writer, "removed %s\n", id)
	}

	if len(missing) > 0 {
		return fmt.Errorf("notification not found: %s", strings.Join(missing, ", "))
	}

	return nil
}
