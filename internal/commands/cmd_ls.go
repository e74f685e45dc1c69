package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/core/notify"
	"github.com/hay-kot/inbox/internal/inbox"
	"github.com/hay-kot/inbox/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *inbox.App

	// flags
	unread     bool
	msgType    string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *inbox.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List notifications",
		UsageText: "inbox ls [--unread] [--type TYPE] [--json]",
		Description: `Displays notifications newest first with their ID, type, read state,
age and title. Use --json for the stored timestamps.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "unread",
				Aliases:     []string{"u"},
				Usage:       "only show unread notifications",
				Destination: &cmd.unread,
			},
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "only show notifications of this type",
				Destination: &cmd.msgType,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as a JSON array",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	var filterType notify.Type
	if cmd.msgType != "" {
		t, err := notify.ParseType(cmd.msgType)
		if err != nil {
			return err
		}
		filterType = t
	}

	all := cmd.app.Store.Messages()
	msgs := make([]notify.Message, 0, len(all))
	for _, m := range all {
		if cmd.unread && m.Read {
			continue
		}
		if filterType != "" && m.Type != filterType {
			continue
		}
		msgs = append(msgs, m)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, msgs)
	}

	if len(msgs) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No notifications")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	now := time.Now()
	_, _ = fmt.Fprintln(w, "ID\tTYPE\tREAD\tAGE\tTITLE")
	for _, m := range msgs {
		read := " "
		if m.Read {
			read = "✓"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Type, read, formatAge(m, now), m.Title)
	}

	return w.Flush()
}
