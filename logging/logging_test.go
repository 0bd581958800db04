package logging_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"segview.dev/segview/logging"
)

func TestTextHandler(t *testing.T) {
	var sb strings.Builder
	logger := slog.New(logging.NewTextHandlerWriter(&sb))
	logging.SetLevel(slog.LevelInfo)
	t.Cleanup(func() { logging.SetLevel(slog.LevelInfo) })

	logger.With("component", "snapshot", "uri", "s3://bucket/a b").Info("loaded", "bytes", 10)
	logger.Debug("hidden")

	line := sb.String()
	assert.Contains(t, line, "INFO [snapshot] loaded")
	assert.True(t, strings.HasSuffix(line, ` uri="s3://bucket/a b" bytes=10`+"\n"), line)
	assert.NotContains(t, line, "hidden")

	sb.Reset()
	logging.SetLevel(slog.LevelDebug)
	logger.Debug("shown")
	assert.Contains(t, sb.String(), "DEBUG [root] shown")
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := logging.ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}
