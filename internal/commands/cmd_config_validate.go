package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "inbox config validate [options]",
				Description: "Validates the configuration file, the storage settings, and the data and storage paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// ValidationIssue is one failed check in the JSON report.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	if cmd.format != "text" && cmd.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", cmd.format)
	}

	issues, err := collectIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		out := struct {
			Valid  bool              `json:"valid"`
			Errors []ValidationIssue `json:"errors,omitempty"`
		}{
			Valid:  len(issues) == 0,
			Errors: issues,
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
	} else {
		w := c.Root().Writer
		for _, issue := range issues {
			_, _ = fmt.Fprintf(w, "✗ %s: %s\n", issue.Field, issue.Message)
		}
		if len(issues) == 0 {
			_, _ = fmt.Fprintln(w, "✓ Configuration is valid")
		} else {
			_, _ = fmt.Fprintf(w, "\n%d error(s) found\n", len(issues))
		}
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// collectIssues flattens criterio field errors. Any other error is returned as is.
func collectIssues(err error) ([]ValidationIssue, error) {
	if err == nil {
		return nil, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	issues := make([]ValidationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, ValidationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues, nil
}
