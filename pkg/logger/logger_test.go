package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedLogger(buf *bytes.Buffer, level string, verbose bool) *LeveledLogger {
	l := NewLoggerTo(buf, level, verbose)
	l.out.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return l
}

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, "info", false)

	l.Named("csv_processor").Info("Successfully processed CSV: %s", "a.csv")

	assert.Equal(t, "2024-03-01 09:30:00 - csv_processor - INFO - Successfully processed CSV: a.csv\n", buf.String())
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		want    []string
	}{
		{name: "info hides debug", level: "info", want: []string{"INFO", "WARNING", "ERROR"}},
		{name: "error only", level: "error", want: []string{"ERROR"}},
		{name: "debug shows all", level: "debug", want: []string{"DEBUG", "INFO", "WARNING", "ERROR"}},
		{name: "verbose enables debug", level: "warn", verbose: true, want: []string{"DEBUG", "WARNING", "ERROR"}},
		{name: "unknown falls back to info", level: "loud", want: []string{"INFO", "WARNING", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := fixedLogger(&buf, tt.level, tt.verbose)
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			var levels []string
			for _, line := range lines {
				parts := strings.Split(line, " - ")
				if assert.Len(t, parts, 4) {
					levels = append(levels, parts[2])
				}
			}
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestNamedSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	root := fixedLogger(&buf, "info", false)
	root.Named("a").Info("one")
	root.Named("b").Error("two")

	out := buf.String()
	assert.Contains(t, out, " - a - INFO - one")
	assert.Contains(t, out, " - b - ERROR - two")
}

func TestNop(t *testing.T) {
	n := Nop()
	n.Info("ignored %d", 1)
	assert.NotNil(t, n.Named("x"))
}
