package encoder

import (
	"bytes"
	"testing"

	"github.com/ugorji/go/codec"

	"github.com/structlog-go/structlog/core"
)

func decodeCBOR(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	out := make(map[string]interface{})
	if err := codec.NewDecoderBytes(data, &cborHandle).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestCBOR_RoundTrip(t *testing.T) {
	rec := &core.Record{
		TimeMS:  1679655670735,
		Level:   core.ErrorLevel,
		Target:  "db",
		Message: "query failed",
		Fields: []core.Field{
			{Key: "attempt", Type: core.IntType, Int64: 3},
			{Key: "fatal", Type: core.BoolType, Int64: 0},
			{Key: "table", Type: core.StringType, Str: "users"},
		},
	}
	var buf bytes.Buffer
	if err := (CBOR{}).Encode(rec, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out := decodeCBOR(t, buf.Bytes())
	if out["level"] != "ERROR" {
		t.Errorf("level = %v", out["level"])
	}
	if out["message"] != "query failed" {
		t.Errorf("message = %v", out["message"])
	}
	if out["target"] != "db" {
		t.Errorf("target = %v", out["target"])
	}
	// Integers stay integers in CBOR, never strings.
	switch ts := out["timestamp"].(type) {
	case int64:
		if ts != 1679655670735 {
			t.Errorf("timestamp = %d", ts)
		}
	case uint64:
		if ts != 1679655670735 {
			t.Errorf("timestamp = %d", ts)
		}
	default:
		t.Errorf("timestamp decoded as %T, want integer", out["timestamp"])
	}
	switch n := out["attempt"].(type) {
	case int64:
		if n != 3 {
			t.Errorf("attempt = %d", n)
		}
	case uint64:
		if n != 3 {
			t.Errorf("attempt = %d", n)
		}
	default:
		t.Errorf("attempt decoded as %T, want integer", out["attempt"])
	}
	if out["fatal"] != false {
		t.Errorf("fatal = %v", out["fatal"])
	}
	if out["table"] != "users" {
		t.Errorf("table = %v", out["table"])
	}
}

func TestCBOR_ReservedKeyCollision(t *testing.T) {
	rec := &core.Record{
		TimeMS:  7,
		Level:   core.InfoLevel,
		Target:  "api",
		Message: "real",
		Fields: []core.Field{
			{Key: "level", Type: core.StringType, Str: "FORGED"},
		},
	}
	var buf bytes.Buffer
	if err := (CBOR{}).Encode(rec, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := decodeCBOR(t, buf.Bytes())
	if out["level"] != "INFO" {
		t.Errorf("level = %v, reserved key did not win", out["level"])
	}
}
