package encoder

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/structlog-go/structlog/core"
)

// JSON encodes records as single-line JSON objects, the reference wire
// format. The four reserved keys come first in a fixed order (level,
// message, target, timestamp), followed by the user fields in call-site
// insertion order. A trailing line feed terminates every event so each
// output line is one independently parsable record.
type JSON struct{}

// Encode appends one JSON-encoded event to buf.
func (JSON) Encode(rec *core.Record, buf *bytes.Buffer) error {
	buf.WriteString(`{"level":"`)
	buf.WriteString(rec.Level.String())
	buf.WriteString(`","message":"`)
	appendJSONString(buf, rec.Message)
	buf.WriteString(`","target":"`)
	appendJSONString(buf, rec.Target)
	buf.WriteString(`","timestamp":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), rec.TimeMS, 10))

	for _, field := range rec.Fields {
		if IsReservedKey(field.Key) {
			continue
		}
		buf.WriteString(`,"`)
		appendJSONString(buf, field.Key)
		buf.WriteString(`":`)
		if err := appendJSONFieldValue(buf, field); err != nil {
			return err
		}
	}

	buf.WriteString("}\n")
	return nil
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONFieldValue writes a JSON-encoded field value to the buffer.
// Any-typed values go through encoding/json, which is the only path
// that can fail (channels, functions, cyclic values).
func appendJSONFieldValue(buf *bytes.Buffer, field core.Field) error {
	switch field.Type {
	case core.StringType, core.ErrorType:
		buf.WriteByte('"')
		appendJSONString(buf, field.Str)
		buf.WriteByte('"')
	case core.IntType, core.Int64Type:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Uint64Type:
		buf.Write(strconv.AppendUint(buf.AvailableBuffer(), uint64(field.Int64), 10))
	case core.Float64Type:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.AnyType:
		data, err := json.Marshal(field.Any)
		if err != nil {
			return err
		}
		buf.Write(data)
	default:
		buf.WriteByte('"')
		appendJSONString(buf, field.StringValue())
		buf.WriteByte('"')
	}
	return nil
}
