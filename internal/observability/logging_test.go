package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithBuildID(ctx, "build-123")
	ctx = WithBuilder(ctx, "static")
	ctx = WithStage(ctx, "parse")

	lc := GetContext(ctx)
	assert.Equal(t, "build-123", lc.BuildID)
	assert.Equal(t, "static", lc.Builder)
	assert.Equal(t, "parse", lc.Stage)

	assert.Equal(t, LogContext{}, GetContext(context.Background()))
}

func TestInfoContextAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithStage(WithBuildID(context.Background(), "b-1"), "prepare")

	InfoContext(ctx, logger, "Completed hierarchy", slog.Int("count", 2))

	out := buf.String()
	assert.Contains(t, out, "build_id=b-1")
	assert.Contains(t, out, "stage=prepare")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "Completed hierarchy")
}

func TestDebugContextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	DebugContext(context.Background(), logger, "hidden")
	assert.Empty(t, buf.String())

	WarnContext(context.Background(), logger, "shown")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestLoggerWithoutContextReturnsBase(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	assert.Same(t, logger, Logger(context.Background(), logger))
}
