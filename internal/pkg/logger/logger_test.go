package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Output: &buf, Service: "roomscheduler"})

	log.Info("hidden")
	log.Warn("shown", "room_id", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"service":"roomscheduler"`)
	assert.Contains(t, out, `"room_id":3`)
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Format: FormatText, Output: &buf}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
