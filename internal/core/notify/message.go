// Package notify holds the notification inbox: the message records, and the
// Store that keeps them ordered, persisted and observed.
package notify

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type classifies a notification.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Types lists every valid Type.
var Types = []Type{TypeSuccess, TypeError, TypeWarning, TypeInfo}

// ErrInvalidType is returned by ParseType for values outside Types.
var ErrInvalidType = errors.New("invalid notification type")

// IsValid reports whether t is one of Types.
func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	}
	return false
}

// ParseType converts a case-insensitive string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q (want one of success, error, warning, info)", ErrInvalidType, s)
	}
	return t, nil
}

// TimestampLayout is the ISO 8601 form used for Message.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Message is a single notification record.
type Message struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

// Time parses Timestamp. Values written by other tools are accepted in any
// RFC 3339 form.
func (m Message) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, m.Timestamp)
}

// Draft is the caller-supplied part of a Message.
type Draft struct {
	Type    Type   `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
