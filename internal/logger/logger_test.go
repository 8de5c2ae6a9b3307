package logger

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("logs at the configured level", func(t *testing.T) {
		var buf strings.Builder
		log := NewWithWriter(&buf, "debug")
		log.Debug().Str("run_id", "abc").Msg("starting run")
		assert.Contains(t, buf.String(), `"run_id":"abc"`)
		assert.Contains(t, buf.String(), "starting run")
	})

	t.Run("suppresses messages below the configured level", func(t *testing.T) {
		var buf strings.Builder
		log := NewWithWriter(&buf, "warn")
		log.Info().Msg("not shown")
		log.Warn().Msg("shown")
		assert.NotContains(t, buf.String(), "not shown")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"anything else", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input))
	}
}
