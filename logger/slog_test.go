package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/structlog-go/structlog/core"
	"github.com/structlog-go/structlog/encoder"
	"github.com/structlog-go/structlog/writer"
)

func TestSlogHandler_TargetAttrRouting(t *testing.T) {
	var apiBuf, defBuf bytes.Buffer
	d := buildWith(t, NewBuilder().
		WithLevel(InfoLevel).
		WithTargetWriter("api", writer.NewSync(&apiBuf, encoder.JSON{})).
		WithDefaultWriter(writer.NewSync(&defBuf, encoder.JSON{})))

	log := slog.New(NewSlogHandler(d))

	log.Info("routed", "target", "api", "status", 200)
	log.Info("unrouted")

	v := parseLine(t, apiBuf.String())
	if got := string(v.GetStringBytes("target")); got != "api" {
		t.Errorf("target = %q", got)
	}
	if got := v.GetInt("status"); got != 200 {
		t.Errorf("status = %d", got)
	}
	// The routing attribute must not be duplicated as a payload field;
	// "target" in the output is the reserved key only.
	if strings.Count(apiBuf.String(), `"target"`) != 1 {
		t.Errorf("target key duplicated: %q", apiBuf.String())
	}

	if !strings.Contains(defBuf.String(), "unrouted") {
		t.Errorf("record without target attr missed the default writer: %q", defBuf.String())
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	d := buildWith(t, NewBuilder().
		WithLevel(InfoLevel).
		WithDefaultWriter(writer.NewSync(&buf, encoder.JSON{})))

	log := slog.New(NewSlogHandler(d)).
		With("target", "svc", "region", "eu").
		WithGroup("req")

	log.Info("handled", "id", int64(42))

	v := parseLine(t, buf.String())
	if got := string(v.GetStringBytes("target")); got != "svc" {
		t.Errorf("target = %q", got)
	}
	if got := string(v.GetStringBytes("region")); got != "eu" {
		t.Errorf("region = %q", got)
	}
	if got := v.GetInt64("req.id"); got != 42 {
		t.Errorf("req.id = %d", got)
	}
}

func TestSlogHandler_LevelMapping(t *testing.T) {
	cases := []struct {
		slog slog.Level
		want core.Level
	}{
		{slog.LevelDebug - 4, core.TraceLevel},
		{slog.LevelDebug, core.DebugLevel},
		{slog.LevelInfo, core.InfoLevel},
		{slog.LevelWarn, core.WarnLevel},
		{slog.LevelError, core.ErrorLevel},
		{slog.LevelError + 4, core.ErrorLevel},
	}
	for _, c := range cases {
		if got := slogLevelToCore(c.slog); got != c.want {
			t.Errorf("slogLevelToCore(%v) = %v, want %v", c.slog, got, c.want)
		}
	}
}

func TestSlogHandler_EnabledFollowsDispatcher(t *testing.T) {
	var buf bytes.Buffer
	d := buildWith(t, NewBuilder().
		WithLevel(WarnLevel).
		WithDefaultWriter(writer.NewSync(&buf, encoder.JSON{})))

	log := slog.New(NewSlogHandler(d))
	log.Info("filtered")
	log.Warn("kept")

	if strings.Contains(buf.String(), "filtered") {
		t.Errorf("info record passed a warn threshold: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}
