package core

import (
	"testing"
	"time"
)

func TestRecord_AddFieldDedup(t *testing.T) {
	r := &Record{}
	r.AddField(Field{Key: "a", Type: IntType, Int64: 1})
	r.AddField(Field{Key: "b", Type: StringType, Str: "x"})
	r.AddField(Field{Key: "a", Type: IntType, Int64: 2})

	if len(r.Fields) != 2 {
		t.Fatalf("expected 2 fields after dedup, got %d", len(r.Fields))
	}
	// The duplicate keeps its first position but carries the new value.
	if r.Fields[0].Key != "a" || r.Fields[0].Int64 != 2 {
		t.Errorf("expected a=2 at position 0, got %s=%d", r.Fields[0].Key, r.Fields[0].Int64)
	}
	if r.Fields[1].Key != "b" {
		t.Errorf("expected b at position 1, got %s", r.Fields[1].Key)
	}
}

func TestRecord_PoolReset(t *testing.T) {
	r := GetRecord()
	r.Target = "api"
	r.Message = "hello"
	r.AddField(Field{Key: "k", Type: StringType, Str: "v"})
	PutRecord(r)

	r2 := GetRecord()
	if len(r2.Fields) != 0 {
		t.Errorf("pooled record has stale fields: %v", r2.Fields)
	}
	if r2.Message != "" || r2.Target != "" {
		t.Errorf("pooled record has stale message/target: %q %q", r2.Message, r2.Target)
	}
	PutRecord(r2)
}

func TestUnixMS(t *testing.T) {
	before := time.Now().UnixMilli()
	ms := UnixMS()
	after := time.Now().UnixMilli()
	if ms < before || ms > after {
		t.Errorf("UnixMS %d outside [%d, %d]", ms, before, after)
	}
}

func TestCoarseClock(t *testing.T) {
	StartCoarseClock()
	time.Sleep(2 * time.Millisecond)
	ms := CoarseUnixMS()
	now := time.Now().UnixMilli()
	if ms == 0 {
		t.Fatal("coarse clock not started")
	}
	if now-ms > 1000 {
		t.Errorf("coarse clock too stale: %d vs %d", ms, now)
	}
}
