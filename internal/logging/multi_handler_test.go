package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(handler)

	log.Info("started", "port", 8080)
	log.Error("boom")

	assert.Contains(t, a.String(), "started")
	assert.Contains(t, a.String(), "boom")
	assert.NotContains(t, b.String(), "started")
	assert.Contains(t, b.String(), "boom")
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMultiHandler(slog.NewTextHandler(&buf, nil))
	log := slog.New(handler).With("request_id", "abc123")

	log.Info("handled")

	assert.Contains(t, buf.String(), "request_id=abc123")
}
