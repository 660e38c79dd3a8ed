package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))

	LogDebug("hidden", Fields{"a": 1})
	LogInfo("shown", Fields{"zeta": 1, "alpha": "x"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "x", record["alpha"])
	assert.Less(t, strings.Index(lines[0], `"alpha"`), strings.Index(lines[0], `"zeta"`))

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestUserError(t *testing.T) {
	wrapped := fmt.Errorf("%w: transaction 3", ErrInvalidDataset)
	err := NewUserError("could not read data.json", wrapped)

	assert.True(t, IsUserError(err))
	assert.True(t, IsUserError(fmt.Errorf("outer: %w", err)))
	assert.False(t, IsUserError(wrapped))
	assert.ErrorIs(t, err, ErrInvalidDataset)
	assert.Equal(t, "could not read data.json: invalid dataset: transaction 3", err.Error())
	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
	assert.False(t, errors.Is(err, ErrInvalidRules))
}
