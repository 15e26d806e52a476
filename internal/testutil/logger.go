// Package testutil holds helpers shared by tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// NopLogger returns a logger that discards all output
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LogCapture collects JSON log lines written at DEBUG and above
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// CaptureLogger returns a logger whose output can be inspected with the
// returned LogCapture
func CaptureLogger() (*slog.Logger, *LogCapture) {
	c := &LogCapture{}
	logger := slog.New(slog.NewJSONHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, c
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Lines decodes every captured line. Lines that are not JSON are skipped.
func (c *LogCapture) Lines() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(c.buf.String()), "\n") {
		var line map[string]any
		if err := json.Unmarshal([]byte(raw), &line); err == nil {
			lines = append(lines, line)
		}
	}
	return lines
}

// Find returns the first line with the given message
func (c *LogCapture) Find(msg string) (map[string]any, bool) {
	for _, line := range c.Lines() {
		if line[slog.MessageKey] == msg {
			return line, true
		}
	}
	return nil, false
}
