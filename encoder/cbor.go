package encoder

import (
	"bytes"

	"github.com/ugorji/go/codec"

	"github.com/structlog-go/structlog/core"
)

var cborHandle codec.CborHandle

func init() {
	// Canonical mode sorts map keys, so CBOR output has a fixed,
	// documented key order (RFC 7049 canonical ordering).
	cborHandle.Canonical = true
}

// CBOR encodes records as definite-length CBOR maps carrying the same
// field set as the JSON encoding: the four reserved keys plus the user
// fields with format-native typing. Key order follows CBOR canonical
// ordering rather than insertion order.
type CBOR struct{}

// Encode appends one CBOR-encoded event to buf.
func (CBOR) Encode(rec *core.Record, buf *bytes.Buffer) error {
	m := make(map[string]interface{}, len(rec.Fields)+4)
	m[KeyLevel] = rec.Level.String()
	m[KeyMessage] = rec.Message
	m[KeyTarget] = rec.Target
	m[KeyTimestamp] = rec.TimeMS
	for _, field := range rec.Fields {
		if IsReservedKey(field.Key) {
			continue
		}
		m[field.Key] = field.Value()
	}
	return codec.NewEncoder(buf, &cborHandle).Encode(m)
}
