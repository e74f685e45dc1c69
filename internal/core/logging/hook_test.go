package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name        string
		ctx         context.Context
		wantCommand string
		wantDriver  string
	}{
		{
			name: "background context adds nothing",
			ctx:  context.Background(),
		},
		{
			name:        "command only",
			ctx:         WithCommand(context.Background(), "rm"),
			wantCommand: "rm",
		},
		{
			name:        "command and driver",
			ctx:         WithDriver(WithCommand(context.Background(), "watch"), "file"),
			wantCommand: "watch",
			wantDriver:  "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})

			logger.Info().Ctx(tt.ctx).Msg("hello")

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			gotCommand, _ := entry["command"].(string)
			if gotCommand != tt.wantCommand {
				t.Errorf("command = %q, want %q", gotCommand, tt.wantCommand)
			}

			gotDriver, _ := entry["driver"].(string)
			if gotDriver != tt.wantDriver {
				t.Errorf("driver = %q, want %q", gotDriver, tt.wantDriver)
			}
		})
	}
}
