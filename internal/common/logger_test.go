package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
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
		{input: "", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, "json")

	LogError(context.Background(), logger, errors.New("boom"), "refresh failed", Fields{"kind": "financial_tips"})

	out := buf.String()
	assert.Contains(t, out, `"msg":"refresh failed"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"kind":"financial_tips"`)
}

func TestUserError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewUserError("could not save profile", inner)

	assert.Equal(t, "could not save profile: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "could not save profile", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
