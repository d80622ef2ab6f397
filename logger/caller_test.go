package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/structlog-go/structlog/encoder"
	"github.com/structlog-go/structlog/writer"
)

func TestCaller_WarnAndAboveGetLocation(t *testing.T) {
	var buf bytes.Buffer
	d := buildWith(t, NewBuilder().
		WithLevel(TraceLevel).
		WithCaller(true).
		WithDefaultWriter(writer.NewSync(&buf, encoder.JSON{})))

	d.Logger("app").Warn("disk nearly full")

	v := parseLine(t, buf.String())
	if got := string(v.GetStringBytes("file")); got != "caller_test.go" {
		t.Errorf("file = %q, want caller_test.go", got)
	}
	if got := v.GetInt("line"); got <= 0 {
		t.Errorf("line = %d, want a positive line number", got)
	}
	if got := string(v.GetStringBytes("module")); !strings.Contains(got, "logger") {
		t.Errorf("module = %q, want the calling function", got)
	}
}

func TestCaller_FormattedVariant(t *testing.T) {
	var buf bytes.Buffer
	d := buildWith(t, NewBuilder().
		WithLevel(TraceLevel).
		WithCaller(true).
		WithDefaultWriter(writer.NewSync(&buf, encoder.JSON{})))

	d.Logger("app").Errorf("attempt %d failed", 3)

	v := parseLine(t, buf.String())
	if got := string(v.GetStringBytes("file")); got != "caller_test.go" {
		t.Errorf("file = %q, want caller_test.go", got)
	}
	if got := v.GetInt("line"); got <= 0 {
		t.Errorf("line = %d, want a positive line number", got)
	}
}

func TestCaller_NotBelowWarn(t *testing.T) {
	var buf bytes.Buffer
	d := buildWith(t, NewBuilder().
		WithLevel(TraceLevel).
		WithCaller(true).
		WithDefaultWriter(writer.NewSync(&buf, encoder.JSON{})))

	d.Logger("app").Info("routine event")

	v := parseLine(t, buf.String())
	if v.Exists("file") || v.Exists("line") {
		t.Errorf("location captured below warn: %s", buf.String())
	}
}

func TestCaller_OffByDefault(t *testing.T) {
	var buf bytes.Buffer
	d := buildWith(t, NewBuilder().
		WithLevel(TraceLevel).
		WithDefaultWriter(writer.NewSync(&buf, encoder.JSON{})))

	d.Logger("app").Error("still no location")

	v := parseLine(t, buf.String())
	if v.Exists("file") || v.Exists("line") || v.Exists("module") {
		t.Errorf("location captured without opting in: %s", buf.String())
	}
}
