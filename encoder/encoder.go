package encoder

import (
	"bytes"

	"github.com/structlog-go/structlog/core"
)

// Encoder converts a log record into one complete encoded event,
// appended to buf. Implementations must be stateless so a single
// Encoder value can be shared by any number of writers.
type Encoder interface {
	Encode(rec *core.Record, buf *bytes.Buffer) error
}

// Reserved keys carried by every encoded record. A user field with one
// of these names is silently dropped: the built-in value always wins.
const (
	KeyLevel     = "level"
	KeyMessage   = "message"
	KeyTarget    = "target"
	KeyTimestamp = "timestamp"
)

// IsReservedKey reports whether key collides with one of the four
// built-in record keys.
func IsReservedKey(key string) bool {
	switch key {
	case KeyLevel, KeyMessage, KeyTarget, KeyTimestamp:
		return true
	}
	return false
}
