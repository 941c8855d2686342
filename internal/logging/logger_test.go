package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel, format string) (*StructuredLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{
		Level:  level,
		Format: format,
		Output: &buf,
	})
	return logger, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, "text")
	ctx := context.Background()

	logger.Debug(ctx, "hidden debug")
	logger.Info(ctx, "hidden info")
	logger.Warn(ctx, nil, "visible warn")
	logger.Error(ctx, errors.New("boom"), "visible error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warn")
	assert.Contains(t, out, "visible error")
	assert.Contains(t, out, "error=boom")
}

func TestTextOutputFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "text")

	logger.WithComponent("merge").
		With("file", "res_1.txt").
		Error(context.Background(), errors.New("no fragments"), "Failed to process line", "line", 7)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `msg="Failed to process line"`)
	assert.Contains(t, out, "component=merge")
	assert.Contains(t, out, "file=res_1.txt")
	assert.Contains(t, out, "line=7")
	assert.Contains(t, out, `error="no fragments"`)
	assert.NotContains(t, out, "time=")

	// field order follows the call
	assert.Less(t, strings.Index(out, "file="), strings.Index(out, "line="))
}

func TestJSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, "json")
	logger.Debug(context.Background(), "parsed", "category", "C1", "keywords", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "parsed", entry["msg"])
	assert.Equal(t, "C1", entry["category"])
	assert.Equal(t, float64(3), entry["keywords"])
}

func TestTimeFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{
		Level:      LevelInfo,
		Output:     &buf,
		TimeFormat: "2006",
	})
	logger.Info(context.Background(), "with time")
	assert.Regexp(t, `time=\d{4} `, buf.String())
}

func TestWithDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "text")
	child := logger.With("run", 1)

	logger.Info(context.Background(), "parent")
	child.Info(context.Background(), "child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "run=1")
	assert.Contains(t, lines[1], "run=1")
}

func TestNilConfigDefaults(t *testing.T) {
	logger := NewLogger(nil)
	assert.Equal(t, LevelInfo, logger.level)
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}
	logger = logger.With("a", 1).WithComponent("x")
	logger.Error(context.Background(), errors.New("ignored"), "nothing happens")
	assert.IsType(t, NopLogger{}, logger)
}

func TestPerfLogger(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, "text")
	op := StartOperation(logger, "merge")
	op.End(context.Background(), "categories", 2)

	out := buf.String()
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "operation=merge")
	assert.Contains(t, out, "categories=2")
	assert.Contains(t, out, "duration_ms=")

	buf.Reset()
	op.EndWithError(context.Background(), errors.New("disk full"))
	assert.Contains(t, buf.String(), "Operation failed")
	assert.Contains(t, buf.String(), `error="disk full"`)
}
