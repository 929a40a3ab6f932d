package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("search complete")

		if !strings.Contains(buf.String(), "search complete") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Fatal("expected logger to be created")
		}
	})

	t.Run("child logger carries key-values", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		child := WithLogger(logger, "request_id", "abc-123")
		child.Error("stream failed")

		out := buf.String()
		if !strings.Contains(out, "abc-123") {
			t.Errorf("expected request_id in output, got %q", out)
		}
	})

	t.Run("SetLogLevel filters below threshold", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("should be dropped")

		if buf.Len() != 0 {
			t.Errorf("expected no output below error level, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
}
