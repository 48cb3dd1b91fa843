package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/Farmhouse121/quantfit/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := ToLogLevel(tt.in); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unknown level should panic")
		}
	}()
	ToLogLevel("loud")
}

func TestErrFmtHandlerAttachesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := errors.NewValidationError("bounds", "length mismatch", 3)
	logger.LogAttrs(context.Background(), slog.LevelError, "fit failed", ErrAttr(err))

	out := buf.String()
	if !strings.Contains(out, "fit failed") {
		t.Fatalf("log output missing message: %s", out)
	}
	if !strings.Contains(out, StacktraceAttrKey) {
		t.Errorf("log output missing stacktrace attribute: %s", out)
	}
}

func TestErrFmtHandlerPassesThroughPlainRecords(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Info("fit started", "samples", 100)

	out := buf.String()
	if !strings.Contains(out, "fit started") {
		t.Fatalf("log output missing message: %s", out)
	}
	if strings.Contains(out, StacktraceAttrKey) {
		t.Errorf("plain record should not carry a stacktrace: %s", out)
	}
}
