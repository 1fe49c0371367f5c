package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"DEBUG", zerolog.DebugLevel},
		{"debug", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLevel(tt.name), "level %q", tt.name)
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "lexinspect", LevelWarn)

	log.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	log.Warn().Int("entries", 3).Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "lexinspect", line["component"])
	require.Equal(t, "shown", line["message"])
	require.EqualValues(t, 3, line["entries"])
	require.Contains(t, line, "time")
}
