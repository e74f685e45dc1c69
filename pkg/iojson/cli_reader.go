package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a T from the file named by its --file flag, or from
// stdin when the flag is unset.
type FileReader[T any] struct {
	fileFlagValue string
}

// Flag returns the --file/-f flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (use - for stdin)",
		Destination: &fr.fileFlagValue,
	}
}

// IsSet reports whether --file was given.
func (fr *FileReader[T]) IsSet() bool {
	return fr.fileFlagValue != ""
}

// Read decodes the input. stdin is used when --file is "-"; an interactive
// terminal is rejected so the command does not hang waiting for input.
func (fr *FileReader[T]) Read(stdin io.Reader) (T, error) {
	var input T
	var reader io.Reader

	if fr.fileFlagValue != "" && fr.fileFlagValue != "-" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
