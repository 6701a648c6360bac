package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func decodeEntries(t *testing.T, buf *bytes.Buffer) []logEntry {
	t.Helper()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerWithModuleField(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.WithModule("kitty").Info("pipeline finished")

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	require.Equal(t, "kitty", entries[0]["module"])
	require.Equal(t, "pipeline finished", entries[0]["message"])
}

func TestLoggerLevelFiltersDebug(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	require.Equal(t, "shown", entries[0]["message"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestLoggerErrorIncludesCause(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Error(fmt.Errorf("exit status 1"), "action failed")

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	require.Equal(t, "exit status 1", entries[0]["error"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("ignored")
	log.Warnf("ignored %d", 1)
	require.Nil(t, log.WithModule("x"))
}
