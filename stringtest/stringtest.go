package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected TOON documents with explicit line
// endings, since encoded documents never carry a trailing newline.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"items[2]{id,name}:",
//		"  1,Ada",
//		"  2,Bob",
//	)
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct decoder inputs exercising Windows line endings.
func JoinCRLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\r')
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Input dedents a raw-string literal: one leading and one trailing
// newline are dropped and the first line's indentation is stripped from
// every line. When the first line is indented, whitespace-only lines also
// become empty; otherwise the lines are returned unchanged. It lets
// indentation-significant documents sit naturally inside indented test
// code.
//
// Example:
//
//	doc := stringtest.Input(`
//	    server:
//	      host: localhost`)
//	// -> "server:\n  host: localhost"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")

	lines := strings.Split(s, "\n")
	first := lines[0]

	indent := first[:len(first)-len(strings.TrimLeft(first, " \t"))]
	if indent == "" {
		return strings.TrimSuffix(s, "\n")
	}

	for i, line := range lines {
		trimmed := strings.TrimPrefix(line, indent)
		if strings.TrimSpace(trimmed) == "" {
			trimmed = ""
		}

		lines[i] = trimmed
	}

	return strings.TrimSuffix(strings.Join(lines, "\n"), "\n")
}
