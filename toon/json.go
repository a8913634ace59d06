package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON parses a JSON document into a Value, preserving object key
// order. Plain [FromGo] normalization of an unmarshaled map would sort
// keys, because Go maps carry no order; this token-level decode keeps the
// textual order so JSON documents convert to TOON shape-stably.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid json: %w", ErrUnsupportedValue, err)
	}

	// A single top-level value is required.
	_, err = dec.Token()
	if err != io.EOF {
		return Value{}, fmt.Errorf("%w: trailing content after json document", ErrUnsupportedValue)
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return normalizeNumber(t)
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
		}

		v, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}

		obj.Set(key, v)
	}

	// Consume the closing brace.
	_, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	return ObjectValue(obj), nil
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	var elems []Value

	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, v)
	}

	_, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	return ArrayValue(elems...), nil
}

// EncodeJSON renders a Value as JSON with the given indent, preserving
// object field order. It is the inverse bridge of [DecodeJSON], used to
// turn decoded TOON documents back into JSON without shuffling keys.
func EncodeJSON(v Value, indent int) ([]byte, error) {
	var buf bytes.Buffer

	err := writeJSON(&buf, v, indent, 0)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value, indent, depth int) error {
	switch v.Kind() {
	case KindArray:
		return writeJSONArray(buf, v.Array(), indent, depth)
	case KindObject:
		return writeJSONObject(buf, v.Object(), indent, depth)
	}

	return writeJSONScalar(buf, v)
}

func writeJSONScalar(buf *bytes.Buffer, v Value) error {
	b, err := json.Marshal(v.Interface())
	if err != nil {
		return err
	}

	buf.Write(b)

	return nil
}

func writeJSONArray(buf *bytes.Buffer, elems []Value, indent, depth int) error {
	if len(elems) == 0 {
		buf.WriteString("[]")

		return nil
	}

	buf.WriteByte('[')

	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}

		writeJSONNewline(buf, indent, depth+1)

		err := writeJSON(buf, e, indent, depth+1)
		if err != nil {
			return err
		}
	}

	writeJSONNewline(buf, indent, depth)
	buf.WriteByte(']')

	return nil
}

func writeJSONObject(buf *bytes.Buffer, obj *Object, indent, depth int) error {
	if obj.Len() == 0 {
		buf.WriteString("{}")

		return nil
	}

	buf.WriteByte('{')

	for i, f := range obj.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}

		writeJSONNewline(buf, indent, depth+1)

		key, err := json.Marshal(f.Key)
		if err != nil {
			return err
		}

		buf.Write(key)
		buf.WriteByte(':')

		if indent > 0 {
			buf.WriteByte(' ')
		}

		err = writeJSON(buf, f.Value, indent, depth+1)
		if err != nil {
			return err
		}
	}

	writeJSONNewline(buf, indent, depth)
	buf.WriteByte('}')

	return nil
}

func writeJSONNewline(buf *bytes.Buffer, indent, depth int) {
	if indent <= 0 {
		return
	}

	buf.WriteByte('\n')

	for range indent * depth {
		buf.WriteByte(' ')
	}
}
