package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New("json", "info", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("publishing", "subgraph", "products")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "publishing", entry["msg"])
	assert.Equal(t, "products", entry["subgraph"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New("text", "warn", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("careful", "host", "localhost")
	assert.Contains(t, buf.String(), "careful")
	assert.Contains(t, buf.String(), "localhost")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("xml", "warn", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("text", "loud", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}
