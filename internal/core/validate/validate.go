// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/inbox/internal/core/notify"
)

// Title validates a notification title is non-empty after trimming whitespace.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// Type validates that t is one of the known notification types.
func Type(t notify.Type) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", notify.ErrInvalidType, t)
	}
	return nil
}

// Draft checks a draft received from the command line before it is stored.
// The store itself accepts any title; requiring one is a CLI policy.
func Draft(d notify.Draft) error {
	return criterio.ValidateStruct(
		criterio.Run("type", d.Type, Type),
		criterio.Run("title", d.Title, Title),
	)
}
