// Package logging holds the zerolog helpers shared across inbox packages.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// ComponentCtx is Component with ctx attached, so that ContextHook can
// copy the command and driver fields onto every event.
func ComponentCtx(ctx context.Context, name string) zerolog.Logger {
	return log.With().Str("cmp", name).Ctx(ctx).Logger()
}
