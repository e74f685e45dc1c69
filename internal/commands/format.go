package commands

import (
	"fmt"
	"time"

	"github.com/hay-kot/inbox/internal/core/notify"
)

// formatAge renders how long before now the message was created, e.g. "5m".
// Unparseable timestamps render as "-".
func formatAge(m notify.Message, now time.Time) string {
	t, err := m.Time()
	if err != nil {
		return "-"
	}

	d := now.Sub(t)
	switch {
	case d < 0:
		return "0s"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// formatLocal renders the timestamp in the local zone, keeping the stored
// string when it cannot be parsed.
func formatLocal(m notify.Message) string {
	t, err := m.Time()
	if err != nil {
		return m.Timestamp
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
