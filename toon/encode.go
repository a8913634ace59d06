package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// printer accumulates emitted lines and carries the immutable emission
// context. Lines are joined by a single LF; the document never ends with a
// trailing newline and indentation uses only spaces.
type printer struct {
	sb     strings.Builder
	indent int
	delim  Delimiter
}

func (p *printer) line(depth int, text string) {
	if p.sb.Len() > 0 {
		p.sb.WriteByte('\n')
	}

	for range depth * p.indent {
		p.sb.WriteByte(' ')
	}

	p.sb.WriteString(text)
}

// encodeDocument renders a normalized Value as a complete document.
func encodeDocument(v Value, indent int, delim Delimiter) (string, error) {
	p := &printer{indent: indent, delim: delim}

	switch v.Kind() {
	case KindObject:
		// An empty object at the root is the empty document.
		for _, f := range v.Object().Fields() {
			err := p.field(f.Key, f.Value, 0)
			if err != nil {
				return "", err
			}
		}

	case KindArray:
		err := p.array("", v.Array(), 0, 1)
		if err != nil {
			return "", err
		}

	default:
		p.line(0, encodeScalar(v, delim))
	}

	return p.sb.String(), nil
}

// field emits one key/value pair of an object block at the given depth.
func (p *printer) field(key string, v Value, depth int) error {
	ek := encodeKey(key)

	switch v.Kind() {
	case KindObject:
		if v.Object().Len() == 0 {
			// Empty objects emit a bare "key:", keeping them
			// syntactically distinct from empty arrays ("key[0]:").
			p.line(depth, ek+":")

			return nil
		}

		err := p.checkNestable()
		if err != nil {
			return err
		}

		p.line(depth, ek+":")

		for _, f := range v.Object().Fields() {
			err := p.field(f.Key, f.Value, depth+1)
			if err != nil {
				return err
			}
		}

		return nil

	case KindArray:
		return p.array(ek, v.Array(), depth, depth+1)
	}

	p.line(depth, ek+": "+encodeScalar(v, p.delim))

	return nil
}

// checkNestable rejects constructs that cannot be recovered from a
// zero-indent document.
func (p *printer) checkNestable() error {
	if p.indent == 0 {
		return fmt.Errorf("%w: nested objects cannot be represented with indent 0", ErrUnsupportedValue)
	}

	return nil
}

// array emits an array. label is the already-encoded text placed before
// the opening bracket: a key, a "- " list marker, "- key" under the
// tabular-first-in-list rule, or empty at the root. headerDepth positions
// the header line; childDepth positions rows and list items.
func (p *printer) array(label string, elems []Value, headerDepth, childDepth int) error {
	switch classifyArray(elems) {
	case layoutInline:
		p.line(headerDepth, label+p.header(len(elems))+p.inlineBody(elems))

		return nil

	case layoutTabular:
		keys := elems[0].Object().Keys()
		p.line(headerDepth, label+p.tabularHeader(len(elems), keys))

		for _, e := range elems {
			p.line(childDepth, p.row(e.Object(), keys))
		}

		return nil
	}

	p.line(headerDepth, label+p.header(len(elems)))

	for _, e := range elems {
		err := p.listItem(e, childDepth)
		if err != nil {
			return err
		}
	}

	return nil
}

// header renders "[N]:" with the delimiter marker for non-comma documents.
func (p *printer) header(n int) string {
	var sb strings.Builder

	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(n))

	if p.delim != DelimiterComma {
		sb.WriteByte(byte(p.delim))
	}

	sb.WriteString("]:")

	return sb.String()
}

// tabularHeader renders "[N]{f1,f2}:" using the active delimiter between
// field names.
func (p *printer) tabularHeader(n int, keys []string) string {
	var sb strings.Builder

	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(n))

	if p.delim != DelimiterComma {
		sb.WriteByte(byte(p.delim))
	}

	sb.WriteString("]{")

	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(byte(p.delim))
		}

		sb.WriteString(encodeKey(k))
	}

	sb.WriteString("}:")

	return sb.String()
}

// inlineBody renders " v1,v2,..." or nothing for the empty array.
func (p *printer) inlineBody(elems []Value) string {
	if len(elems) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteByte(' ')

	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(byte(p.delim))
		}

		sb.WriteString(encodeScalar(e, p.delim))
	}

	return sb.String()
}

// row renders one tabular row in declared field order.
func (p *printer) row(obj *Object, keys []string) string {
	var sb strings.Builder

	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(byte(p.delim))
		}

		v, _ := obj.Get(k)
		sb.WriteString(encodeScalar(v, p.delim))
	}

	return sb.String()
}

// listItem emits one "- " element of a list array at the given depth.
func (p *printer) listItem(v Value, depth int) error {
	switch v.Kind() {
	case KindArray:
		// A nested array is itself the element: its header rides the
		// hyphen and its children sit one step deeper.
		return p.array("- ", v.Array(), depth, depth+1)

	case KindObject:
		return p.listItemObject(v.Object(), depth)
	}

	p.line(depth, "- "+encodeScalar(v, p.delim))

	return nil
}

// listItemObject emits an object element. The first field shares the
// hyphen line; when that field is an array its rows or items indent two
// steps past the hyphen, while the remaining fields indent one step.
func (p *printer) listItemObject(obj *Object, depth int) error {
	if obj.Len() == 0 {
		p.line(depth, "-")

		return nil
	}

	// A multi-field object inside a list is a nested map: its trailing
	// fields need their own indentation level.
	if obj.Len() > 1 {
		err := p.checkNestable()
		if err != nil {
			return err
		}
	}

	first := obj.Fields()[0]
	ek := encodeKey(first.Key)

	switch first.Value.Kind() {
	case KindArray:
		err := p.array("- "+ek, first.Value.Array(), depth, depth+2)
		if err != nil {
			return err
		}

	case KindObject:
		if first.Value.Object().Len() == 0 {
			p.line(depth, "- "+ek+":")

			break
		}

		err := p.checkNestable()
		if err != nil {
			return err
		}

		p.line(depth, "- "+ek+":")

		for _, f := range first.Value.Object().Fields() {
			err := p.field(f.Key, f.Value, depth+2)
			if err != nil {
				return err
			}
		}

	default:
		p.line(depth, "- "+ek+": "+encodeScalar(first.Value, p.delim))
	}

	for _, f := range obj.Fields()[1:] {
		err := p.field(f.Key, f.Value, depth+1)
		if err != nil {
			return err
		}
	}

	return nil
}
