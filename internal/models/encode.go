package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes v as compact JSON. Object members are written in
// insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		// json.Number validates the literal on marshal.
		data, err := json.Marshal(v.num)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[0] == '"' {
			return fmt.Errorf("invalid number literal %q", string(v.num))
		}
		buf.Write(data)
	case String:
		return encodeString(buf, v.str)
	case Object:
		buf.WriteByte('{')
		for i, key := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := v.obj.members[key].encode(buf); err != nil {
				return fmt.Errorf("member %q: %w", key, err)
			}
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := elem.encode(buf); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unknown kind %s", v.kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
