package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{in: "success", want: TypeSuccess},
		{in: "ERROR", want: TypeError},
		{in: " warning ", want: TypeWarning},
		{in: "Info", want: TypeInfo},
		{in: "", wantErr: true},
		{in: "debug", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestType_IsValid(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, typ.IsValid(), typ)
	}
	assert.False(t, Type("fatal").IsValid())
}

func TestMessage_TimeAcceptsForeignTimestamps(t *testing.T) {
	m := Message{Timestamp: "2024-05-01T10:00:00+02:00"}

	got, err := m.Time()
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC).Equal(got))

	_, err = Message{Timestamp: "yesterday"}.Time()
	assert.Error(t, err)
}

func TestNewID(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_123)
	id := NewID(at)

	assert.Len(t, id, len("1700000000123")+9)
	assert.Equal(t, "1700000000123", id[:13])
	assert.NotEqual(t, id, NewID(at))
}
