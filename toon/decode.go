package toon

import (
	"errors"
	"fmt"
	"strings"
)

// srcLine is one physical line of input with its indentation resolved to
// a depth.
type srcLine struct {
	text  string
	num   int
	depth int
}

// decodeState walks the annotated lines. pos always points at the next
// unconsumed line.
type decodeState struct {
	lines  []srcLine
	pos    int
	indent int
	strict bool
}

// decodeDocument parses a complete TOON document. The empty document is
// the empty object.
func decodeDocument(input string, indent int, strict bool) (Value, error) {
	lines, err := splitLines(input, indent, strict)
	if err != nil {
		return Value{}, err
	}

	if len(lines) == 0 {
		return ObjectValue(NewObject()), nil
	}

	d := &decodeState{lines: lines, indent: indent, strict: strict}

	root, err := d.parseRoot()
	if err != nil {
		return Value{}, err
	}

	if d.pos != len(d.lines) {
		return Value{}, syntaxErr(d.lines[d.pos].num, "unexpected content after document value")
	}

	return root, nil
}

// splitLines performs the first decoder pass: split on LF, accept and
// strip CR from CRLF input, skip blank lines, and turn leading spaces
// into depths. Tabs never count as indentation.
func splitLines(input string, indent int, strict bool) ([]srcLine, error) {
	if input == "" {
		return nil, nil
	}

	raw := strings.Split(input, "\n")
	lines := make([]srcLine, 0, len(raw))

	for i, text := range raw {
		num := i + 1
		text = strings.TrimSuffix(text, "\r")

		spaces := 0
		for spaces < len(text) && text[spaces] == ' ' {
			spaces++
		}

		if spaces == len(text) {
			// Blank line.
			continue
		}

		if text[spaces] == '\t' {
			return nil, syntaxErrAt(num, spaces+1, "tab used as indentation")
		}

		depth := 0

		switch {
		case indent == 0:
			if spaces > 0 {
				return nil, syntaxErrAt(num, 1, "indentation in a zero-indent document")
			}
		default:
			if strict && spaces%indent != 0 {
				return nil, syntaxErrAt(num, 1,
					fmt.Sprintf("indentation of %d spaces is not a multiple of %d", spaces, indent))
			}

			depth = spaces / indent
		}

		lines = append(lines, srcLine{text: text[spaces:], num: num, depth: depth})
	}

	return lines, nil
}

func (d *decodeState) peek() (srcLine, bool) {
	if d.pos >= len(d.lines) {
		return srcLine{}, false
	}

	return d.lines[d.pos], true
}

func (d *decodeState) next() srcLine {
	ln := d.lines[d.pos]
	d.pos++

	return ln
}

// parseRoot dispatches on the first line: a bracket starts a root array,
// a keyed line starts the root object, anything else is a lone scalar.
func (d *decodeState) parseRoot() (Value, error) {
	first := d.lines[0]
	if first.depth != 0 {
		return Value{}, syntaxErr(first.num, "unexpected indentation on first line")
	}

	if strings.HasPrefix(first.text, "[") {
		d.pos++

		hdr, err := parseArrayHeader(first.text, first.num, 1)
		if err != nil {
			return Value{}, err
		}

		return d.parseArrayBody(hdr, first.num, 1)
	}

	keyed, err := isKeyedLine(first.text)
	if err != nil {
		return Value{}, syntaxErr(first.num, err.Error())
	}

	if !keyed {
		d.pos++

		v, serr := parseScalarToken(first.text)
		if serr != nil {
			return Value{}, syntaxErr(first.num, serr.Error())
		}

		return v, nil
	}

	obj, err := d.parseObjectBlock(0)
	if err != nil {
		return Value{}, err
	}

	return ObjectValue(obj), nil
}

// isKeyedLine reports whether text is a key line ("key: ...", "key[...")
// rather than a bare scalar. Quoted keys are recognized by what follows
// the closing quote.
func isKeyedLine(text string) (bool, error) {
	if strings.HasPrefix(text, "\"") {
		_, n, err := scanQuoted(text)
		if err != nil {
			return false, err
		}

		if n == len(text) {
			return false, nil
		}

		if text[n] == ':' || text[n] == '[' {
			return true, nil
		}

		return false, errors.New("unexpected character after closing quote")
	}

	return strings.ContainsAny(text, ":["), nil
}

// parseObjectBlock reads consecutive key lines at exactly the given depth
// into an ordered object.
func (d *decodeState) parseObjectBlock(depth int) (*Object, error) {
	obj := NewObject()

	for {
		ln, ok := d.peek()
		if !ok || ln.depth < depth {
			return obj, nil
		}

		if ln.depth > depth {
			return nil, syntaxErr(ln.num, "unexpected indentation")
		}

		if isListLine(ln.text) {
			return nil, syntaxErr(ln.num, "unexpected list item in object block")
		}

		key, value, err := d.parseFieldLine(depth)
		if err != nil {
			return nil, err
		}

		obj.Set(key, value)
	}
}

// parseFieldLine consumes one "key: value", "key:", or "key[...]..."
// line at the given depth, along with any child lines its value owns.
func (d *decodeState) parseFieldLine(depth int) (string, Value, error) {
	ln := d.next()

	key, rest, err := splitKey(ln)
	if err != nil {
		return "", Value{}, err
	}

	if rest[0] == '[' {
		col := len(ln.text) - len(rest) + ln.depth*d.indent + 1

		hdr, herr := parseArrayHeader(rest, ln.num, col)
		if herr != nil {
			return "", Value{}, herr
		}

		value, aerr := d.parseArrayBody(hdr, ln.num, depth+1)
		if aerr != nil {
			return "", Value{}, aerr
		}

		return key, value, nil
	}

	// rest[0] is ':'.
	after := rest[1:]
	if after != "" {
		v, serr := parseScalarToken(after)
		if serr != nil {
			return "", Value{}, syntaxErr(ln.num, serr.Error())
		}

		return key, v, nil
	}

	// Bare "key:" introduces a child object block; with no deeper lines
	// it is the empty object.
	child, ok := d.peek()
	if !ok || child.depth <= depth {
		return key, ObjectValue(NewObject()), nil
	}

	childObj, cerr := d.parseObjectBlock(depth + 1)
	if cerr != nil {
		return "", Value{}, cerr
	}

	return key, ObjectValue(childObj), nil
}

// splitKey separates a line's key from the rest, which always begins with
// ':' or '['.
func splitKey(ln srcLine) (string, string, error) {
	text := ln.text

	if strings.HasPrefix(text, "\"") {
		content, n, err := scanQuoted(text)
		if err != nil {
			return "", "", syntaxErr(ln.num, err.Error())
		}

		if n == len(text) || (text[n] != ':' && text[n] != '[') {
			return "", "", syntaxErr(ln.num, "expected ':' after key")
		}

		return content, text[n:], nil
	}

	idx := strings.IndexAny(text, ":[")
	if idx < 0 {
		return "", "", syntaxErr(ln.num, "expected ':' after key")
	}

	if idx == 0 {
		return "", "", syntaxErr(ln.num, "empty keys must be quoted")
	}

	return text[:idx], text[idx:], nil
}

// parseArrayBody reads an array given its parsed header. childDepth is
// where the array's rows or list items live; headerLine anchors count
// mismatch errors.
func (d *decodeState) parseArrayBody(hdr arrayHeader, headerLine, childDepth int) (Value, error) {
	if hdr.fields != nil {
		return d.parseTabularRows(hdr, headerLine, childDepth)
	}

	if hdr.rest != "" {
		return d.parseInlineBody(hdr, headerLine)
	}

	// No body on the header line: a list block, or the empty array.
	ln, ok := d.peek()
	if ok && d.childAt(ln, childDepth) && (d.indent > 0 || hdr.count > 0) {
		if !isListLine(ln.text) {
			return Value{}, syntaxErr(ln.num, "expected list item")
		}

		return d.parseListItems(hdr, headerLine, childDepth)
	}

	if hdr.count != 0 && d.strict {
		return Value{}, &CountMismatchError{Line: headerLine, Declared: hdr.count, Actual: 0}
	}

	return ArrayValue(), nil
}

// parseInlineBody splits the header line's own body into scalars.
func (d *decodeState) parseInlineBody(hdr arrayHeader, headerLine int) (Value, error) {
	body := strings.TrimPrefix(hdr.rest, " ")

	tokens, err := splitDelimited(body, hdr.delim)
	if err != nil {
		return Value{}, syntaxErr(headerLine, err.Error())
	}

	if d.strict && len(tokens) != hdr.count {
		return Value{}, &CountMismatchError{Line: headerLine, Declared: hdr.count, Actual: len(tokens)}
	}

	elems := make([]Value, len(tokens))

	for i, tok := range tokens {
		v, serr := parseScalarToken(tok)
		if serr != nil {
			return Value{}, syntaxErr(headerLine, serr.Error())
		}

		elems[i] = v
	}

	return ArrayValue(elems...), nil
}

// parseTabularRows reads every line at childDepth as one row of scalars
// in the header's declared field order.
func (d *decodeState) parseTabularRows(hdr arrayHeader, headerLine, childDepth int) (Value, error) {
	var elems []Value

	for {
		ln, ok := d.peek()
		if !ok || !d.childAt(ln, childDepth) || isListLine(ln.text) {
			break
		}

		// Zero-indent documents reconstruct depth from the declared
		// count: the header bounds how many flat lines are rows.
		if d.indent == 0 && len(elems) == hdr.count {
			break
		}

		d.pos++

		tokens, err := splitDelimited(ln.text, hdr.delim)
		if err != nil {
			return Value{}, syntaxErr(ln.num, err.Error())
		}

		if len(tokens) != len(hdr.fields) {
			return Value{}, syntaxErr(ln.num,
				fmt.Sprintf("row has %d values, header declares %d fields", len(tokens), len(hdr.fields)))
		}

		row := NewObject()

		for i, tok := range tokens {
			v, serr := parseScalarToken(tok)
			if serr != nil {
				return Value{}, syntaxErr(ln.num, serr.Error())
			}

			row.Set(hdr.fields[i], v)
		}

		elems = append(elems, ObjectValue(row))
	}

	if d.strict && len(elems) != hdr.count {
		return Value{}, &CountMismatchError{Line: headerLine, Declared: hdr.count, Actual: len(elems)}
	}

	return ArrayValue(elems...), nil
}

// parseListItems reads consecutive "- " lines at childDepth.
func (d *decodeState) parseListItems(hdr arrayHeader, headerLine, childDepth int) (Value, error) {
	var elems []Value

	for {
		ln, ok := d.peek()
		if !ok || !d.childAt(ln, childDepth) || !isListLine(ln.text) {
			break
		}

		if d.indent == 0 && len(elems) == hdr.count {
			break
		}

		item, err := d.parseListItem(childDepth)
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, item)
	}

	if d.strict && len(elems) != hdr.count {
		return Value{}, &CountMismatchError{Line: headerLine, Declared: hdr.count, Actual: len(elems)}
	}

	return ArrayValue(elems...), nil
}

func isListLine(text string) bool {
	return text == "-" || strings.HasPrefix(text, "- ")
}

// childAt reports whether ln sits at the wanted child depth. Zero-indent
// documents carry no depth information, so every line qualifies and the
// callers bound consumption by declared counts instead.
func (d *decodeState) childAt(ln srcLine, want int) bool {
	if d.indent == 0 {
		return true
	}

	return ln.depth == want
}

// parseListItem reads one list element starting at its hyphen line. depth
// is the hyphen's own depth.
func (d *decodeState) parseListItem(depth int) (Value, error) {
	ln := d.next()

	if ln.text == "-" {
		// A bare hyphen is the empty-object element.
		return ObjectValue(NewObject()), nil
	}

	content := ln.text[2:]

	// A nested array rides the hyphen with no key; its children sit one
	// step deeper.
	if strings.HasPrefix(content, "[") {
		col := ln.depth*d.indent + 3

		hdr, err := parseArrayHeader(content, ln.num, col)
		if err != nil {
			return Value{}, err
		}

		return d.parseArrayBody(hdr, ln.num, depth+1)
	}

	keyed, err := isKeyedLine(content)
	if err != nil {
		return Value{}, syntaxErr(ln.num, err.Error())
	}

	if !keyed {
		v, serr := parseScalarToken(content)
		if serr != nil {
			return Value{}, syntaxErr(ln.num, serr.Error())
		}

		return v, nil
	}

	return d.parseListItemObject(ln, content, depth)
}

// parseListItemObject reads an object element: the first field from the
// hyphen line, the remaining fields one step deeper. Containers owned by
// the first field sit two steps past the hyphen, mirroring the emitter's
// tabular-first-in-list rule.
func (d *decodeState) parseListItemObject(ln srcLine, content string, depth int) (Value, error) {
	obj := NewObject()

	key, rest, err := splitKey(srcLine{text: content, num: ln.num, depth: ln.depth})
	if err != nil {
		return Value{}, err
	}

	switch {
	case rest[0] == '[':
		col := ln.depth*d.indent + 2 + len(content) - len(rest) + 1

		hdr, herr := parseArrayHeader(rest, ln.num, col)
		if herr != nil {
			return Value{}, herr
		}

		value, aerr := d.parseArrayBody(hdr, ln.num, depth+2)
		if aerr != nil {
			return Value{}, aerr
		}

		obj.Set(key, value)

	case rest[1:] != "":
		v, serr := parseScalarToken(rest[1:])
		if serr != nil {
			return Value{}, syntaxErr(ln.num, serr.Error())
		}

		obj.Set(key, v)

	default:
		// "- key:" introduces a nested object two steps past the hyphen.
		child, ok := d.peek()
		if ok && child.depth == depth+2 {
			childObj, cerr := d.parseObjectBlock(depth + 2)
			if cerr != nil {
				return Value{}, cerr
			}

			obj.Set(key, ObjectValue(childObj))
		} else {
			obj.Set(key, ObjectValue(NewObject()))
		}
	}

	// Remaining fields of the same element. Unreachable in zero-indent
	// documents, where a multi-field element cannot be represented.
	for {
		next, ok := d.peek()
		if !ok || d.indent == 0 || next.depth != depth+1 || isListLine(next.text) {
			break
		}

		fkey, fval, ferr := d.parseFieldLine(depth + 1)
		if ferr != nil {
			return Value{}, ferr
		}

		obj.Set(fkey, fval)
	}

	return ObjectValue(obj), nil
}

// splitDelimited splits a row or inline body into raw tokens on delim,
// honoring quoted strings and validating escape sequences.
func splitDelimited(s string, delim Delimiter) ([]string, error) {
	var tokens []string

	start := 0
	i := 0

	for i < len(s) {
		switch s[i] {
		case byte(delim):
			tokens = append(tokens, s[start:i])
			i++
			start = i

		case '"':
			_, n, err := scanQuoted(s[i:])
			if err != nil {
				return nil, err
			}

			i += n

		default:
			i++
		}
	}

	tokens = append(tokens, s[start:])

	return tokens, nil
}
