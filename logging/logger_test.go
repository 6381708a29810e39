package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatEntry(t *testing.T, f *TextFormatter, entry *logrus.Entry) string {
	t.Helper()
	out, err := f.Format(entry)
	require.NoError(t, err)
	return string(out)
}

func TestTextFormatter(t *testing.T) {
	logger := logrus.New()
	ts := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	t.Run("default format includes timestamp, level and component", func(t *testing.T) {
		f := &TextFormatter{}
		entry := logger.WithField("component", "editor")
		entry.Time = ts
		entry.Level = logrus.InfoLevel
		entry.Message = "autosaved store"

		out := formatEntry(t, f, entry)
		assert.Contains(t, out, "2026-03-14 10:30:00")
		assert.Contains(t, out, "[INFO]")
		assert.Contains(t, out, "[editor]")
		assert.Contains(t, out, "autosaved store")
	})

	t.Run("warning level is shortened to WARN", func(t *testing.T) {
		f := &TextFormatter{}
		entry := logrus.NewEntry(logger)
		entry.Time = ts
		entry.Level = logrus.WarnLevel
		entry.Message = "autosave failed"

		out := formatEntry(t, f, entry)
		assert.Contains(t, out, "[WARN]")
		assert.NotContains(t, out, "WARNING")
	})

	t.Run("simple preset drops timestamp and component", func(t *testing.T) {
		f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
		entry := logger.WithField("component", "editor")
		entry.Time = ts
		entry.Level = logrus.InfoLevel
		entry.Message = "saved"

		out := formatEntry(t, f, entry)
		assert.Equal(t, "[INFO] saved\n", out)
	})

	t.Run("extra fields render in stable order", func(t *testing.T) {
		f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
		entry := logger.WithFields(logrus.Fields{
			"store": "s1",
			"retry": 3,
		})
		entry.Time = ts
		entry.Level = logrus.ErrorLevel
		entry.Message = "save failed"

		out := formatEntry(t, f, entry)
		assert.True(t, strings.Index(out, "retry=3") < strings.Index(out, "store=s1"))
	})
}

func TestNewLoggerSingleton(t *testing.T) {
	a := NewLogger("test-singleton")
	b := NewLogger("test-singleton")
	assert.Same(t, a, b)
}
