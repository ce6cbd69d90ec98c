package sfcgo

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Defaults(t *testing.T) {
	require.NotNil(t, NewLogger(nil))
	require.NotNil(t, NewTextLogger(slog.LevelInfo))
	require.NotNil(t, NewJSONLogger(slog.LevelInfo))
	require.NotNil(t, NoopLogger())
}

func TestLogger_WithHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.WithDimensions(3).WithCellBits(8).WithCount(42).Info("hello")

	out := buf.String()
	assert.Contains(t, out, "dimensions=3")
	assert.Contains(t, out, "cell_bits=8")
	assert.Contains(t, out, "count=42")
}

func TestLogger_LogDroppedItem(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.LogDroppedItem(7, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "dropping item")
	assert.Contains(t, out, "ordinal=7")
	assert.True(t, strings.Contains(out, "level=WARN"))
}

func TestNoopLogger_DiscardsOutput(t *testing.T) {
	l := NoopLogger()

	// Must not panic and must not write anywhere observable.
	l.LogBuild(10, 9, 1, 4, 0)
	l.LogQueryMiss("find", errors.New("off grid"))
}
