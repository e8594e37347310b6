package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestAgentLoggerContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelDebug, Output: &buf}).
		WithComponent("node").
		WithRun("planner", "r1")

	logger.Info("hello")

	entry := lastLine(t, &buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "node", entry["component"])
	assert.Equal(t, "planner", entry["agent"])
	assert.Equal(t, "r1", entry["run_id"])
}

func TestAgentLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestLogNodeRunFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.LogNodeRun("fetch", 12*time.Millisecond, false, errors.New("boom"))

	entry := lastLine(t, &buf)
	assert.Equal(t, "node run failed", entry["msg"])
	assert.Equal(t, "fetch", entry["node"])
	assert.Equal(t, false, entry["ok"])
	assert.Equal(t, "boom", entry["error"])
}

func TestRotatingFileOutput(t *testing.T) {
	path := t.TempDir() + "/agent.log"
	logger := NewLogger(&LoggerConfig{
		Level: LogLevelInfo,
		File:  &FileConfig{Path: path, MaxSizeMB: 1},
	})

	logger.Info("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
