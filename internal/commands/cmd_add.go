package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/core/notify"
	"github.com/hay-kot/inbox/internal/core/validate"
	"github.com/hay-kot/inbox/internal/inbox"
	"github.com/hay-kot/inbox/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *inbox.App

	// flags
	msgType    string
	title      string
	jsonOutput bool
	draftFile  iojson.FileReader[notify.Draft]
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *inbox.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a notification",
		UsageText: "inbox add --type info --title TITLE [content...]\n   inbox add -f draft.json",
		Description: `Adds a notification to the front of the list and prints its ID.

The draft can come from flags, or as a JSON object {"type","title","content"}
read from --file (use - for stdin).`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "notification type (success, error, warning, info)",
				Value:       string(notify.TypeInfo),
				Destination: &cmd.msgType,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "notification title",
				Destination: &cmd.title,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the created notification as JSON",
				Destination: &cmd.jsonOutput,
			},
			cmd.draftFile.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(_ context.Context, c *cli.Command) error {
	draft, err := cmd.draft(c)
	if err != nil {
		return err
	}

	msg := cmd.app.Store.Add(draft)

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, msg)
	}

	_, err = fmt.Fprintln(c.Root().Writer, msg.ID)
	return err
}

func (cmd *AddCmd) draft(c *cli.Command) (notify.Draft, error) {
	var draft notify.Draft

	if cmd.draftFile.IsSet() {
		var stdin io.Reader = os.Stdin
		if c.Root().Reader != nil {
			stdin = c.Root().Reader
		}

		read, err := cmd.draftFile.Read(stdin)
		if err != nil {
			return draft, fmt.Errorf("read draft: %w", err)
		}
		draft = read
	} else {
		draft = notify.Draft{
			Type:    notify.Type(cmd.msgType),
			Title:   cmd.title,
			Content: strings.Join(c.Args().Slice(), " "),
		}
	}

	t, err := notify.ParseType(string(draft.Type))
	if err != nil {
		return draft, err
	}
	draft.Type = t

	if err := validate.Draft(draft); err != nil {
		return draft, err
	}

	return draft, nil
}
