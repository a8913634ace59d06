package toon

import "fmt"

// Delimiter is the document-wide separator for inline array elements,
// tabular fields, and tabular row values.
type Delimiter byte

// Supported delimiters. Comma is the default and is never marked in array
// headers; tab and pipe are signalled by a marker character inside the
// brackets so the decoder can recover the context.
const (
	DelimiterComma Delimiter = ','
	DelimiterTab   Delimiter = '\t'
	DelimiterPipe  Delimiter = '|'
)

func validDelimiter(d Delimiter) bool {
	switch d {
	case DelimiterComma, DelimiterTab, DelimiterPipe:
		return true
	}

	return false
}

const defaultIndent = 2

// Encoder renders Values as TOON documents. A single Encoder is immutable
// and safe for concurrent use.
//
// Create instances with [NewEncoder].
type Encoder struct {
	indent int
	delim  Delimiter
}

// EncoderOption configures an [Encoder].
type EncoderOption func(*Encoder)

// WithIndent sets the number of spaces per indentation level (default 2).
func WithIndent(spaces int) EncoderOption {
	return func(e *Encoder) {
		e.indent = spaces
	}
}

// WithDelimiter sets the active delimiter (default [DelimiterComma]).
func WithDelimiter(d Delimiter) EncoderOption {
	return func(e *Encoder) {
		e.delim = d
	}
}

// NewEncoder constructs an Encoder, validating all options up front.
// Invalid options return an error matching [ErrInvalidOption]; no codec
// method ever revalidates.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		indent: defaultIndent,
		delim:  DelimiterComma,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.indent < 0 {
		return nil, fmt.Errorf("%w: indent must be non-negative, got %d", ErrInvalidOption, e.indent)
	}

	if !validDelimiter(e.delim) {
		return nil, fmt.Errorf("%w: delimiter must be comma, tab, or pipe", ErrInvalidOption)
	}

	return e, nil
}

// Marshal normalizes v and renders it as a TOON document. The output uses
// LF line endings and carries no trailing newline.
func (e *Encoder) Marshal(v any) ([]byte, error) {
	val, err := FromGo(v)
	if err != nil {
		return nil, err
	}

	return e.MarshalValue(val)
}

// MarshalValue renders an already-normalized Value.
func (e *Encoder) MarshalValue(v Value) ([]byte, error) {
	s, err := encodeDocument(v, e.indent, e.delim)
	if err != nil {
		return nil, err
	}

	return []byte(s), nil
}

// Decoder parses TOON documents into Values. A single Decoder is immutable
// and safe for concurrent use.
//
// Create instances with [NewDecoder].
type Decoder struct {
	indent int
	strict bool
}

// DecoderOption configures a [Decoder].
type DecoderOption func(*Decoder)

// WithDecodeIndent sets the number of spaces the decoder maps to one depth
// level (default 2).
func WithDecodeIndent(spaces int) DecoderOption {
	return func(d *Decoder) {
		d.indent = spaces
	}
}

// WithStrict toggles strict mode (default true). In strict mode declared
// array lengths must match the observed element counts and indentation
// must be an exact multiple of the indent width.
func WithStrict(strict bool) DecoderOption {
	return func(d *Decoder) {
		d.strict = strict
	}
}

// NewDecoder constructs a Decoder, validating all options up front.
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		indent: defaultIndent,
		strict: true,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.indent < 0 {
		return nil, fmt.Errorf("%w: indent must be non-negative, got %d", ErrInvalidOption, d.indent)
	}

	return d, nil
}

// Decode parses a TOON document into a Value. The empty document decodes
// to an empty object.
func (d *Decoder) Decode(data []byte) (Value, error) {
	return decodeDocument(string(data), d.indent, d.strict)
}

// Marshal renders v as a TOON document using a temporary encoder.
func Marshal(v any, opts ...EncoderOption) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return e.Marshal(v)
}

// MarshalString renders v as a TOON document string.
func MarshalString(v any, opts ...EncoderOption) (string, error) {
	b, err := Marshal(v, opts...)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Decode parses a TOON document using a temporary decoder.
func Decode(data []byte, opts ...DecoderOption) (Value, error) {
	d, err := NewDecoder(opts...)
	if err != nil {
		return Value{}, err
	}

	return d.Decode(data)
}

// Unmarshal decodes a TOON document into v, which must be one of *[Value],
// *any, *map[string]any, or *[]any.
func Unmarshal(data []byte, v any, opts ...DecoderOption) error {
	val, err := Decode(data, opts...)
	if err != nil {
		return err
	}

	switch target := v.(type) {
	case *Value:
		*target = val
	case *any:
		*target = val.Interface()
	case *map[string]any:
		m, ok := val.Interface().(map[string]any)
		if !ok {
			return fmt.Errorf("%w: document is %s, not an object", ErrUnsupportedValue, val.Kind())
		}

		*target = m
	case *[]any:
		a, ok := val.Interface().([]any)
		if !ok {
			return fmt.Errorf("%w: document is %s, not an array", ErrUnsupportedValue, val.Kind())
		}

		*target = a
	default:
		return fmt.Errorf("%w: unmarshal target must be *toon.Value, *any, *map[string]any, or *[]any", ErrUnsupportedValue)
	}

	return nil
}
