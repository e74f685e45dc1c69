package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	driverKey  contextKey = "driver"
)

// WithCommand records the CLI command being executed.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// WithDriver records the storage driver in use.
func WithDriver(ctx context.Context, driver string) context.Context {
	return context.WithValue(ctx, driverKey, driver)
}

// GetCommand returns the command name, or "" if none was set.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

// GetDriver returns the storage driver, or "" if none was set.
func GetDriver(ctx context.Context) string {
	if v, ok := ctx.Value(driverKey).(string); ok {
		return v
	}
	return ""
}
