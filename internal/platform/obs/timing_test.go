package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestTimeLogsRequestID(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithRequestID(context.Background(), "abc-123")

	var err error
	Time(ctx, "plan voyage")(&err)

	out := buf.String()
	if !strings.Contains(out, "req_id=abc-123") || !strings.Contains(out, `op="plan voyage"`) {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestTimeLogsError(t *testing.T) {
	buf := captureDefault(t)

	err := errors.New("forecast unavailable")
	Time(context.Background(), "fetch")(&err)

	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "forecast unavailable") {
		t.Fatalf("expected warning with error, got %q", buf.String())
	}
}

func TestRequestIDMissing(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
}
