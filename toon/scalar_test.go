package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeUnquoted(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		delim Delimiter
		want  bool
	}{
		"plain word": {
			input: "hello",
			delim: DelimiterComma,
			want:  true,
		},
		"empty": {
			input: "",
			delim: DelimiterComma,
			want:  false,
		},
		"leading space": {
			input: " x",
			delim: DelimiterComma,
			want:  false,
		},
		"trailing space": {
			input: "x ",
			delim: DelimiterComma,
			want:  false,
		},
		"interior space": {
			input: "two words",
			delim: DelimiterComma,
			want:  true,
		},
		"null literal": {
			input: "null",
			delim: DelimiterComma,
			want:  false,
		},
		"true literal": {
			input: "true",
			delim: DelimiterComma,
			want:  false,
		},
		"uppercase True is plain": {
			input: "True",
			delim: DelimiterComma,
			want:  true,
		},
		"integer": {
			input: "42",
			delim: DelimiterComma,
			want:  false,
		},
		"negative float": {
			input: "-3.14",
			delim: DelimiterComma,
			want:  false,
		},
		"exponent": {
			input: "1e5",
			delim: DelimiterComma,
			want:  false,
		},
		"octal-like": {
			input: "0123",
			delim: DelimiterComma,
			want:  false,
		},
		"hex": {
			input: "0x1f",
			delim: DelimiterComma,
			want:  false,
		},
		"binary": {
			input: "0b101",
			delim: DelimiterComma,
			want:  false,
		},
		"uppercase hex is plain": {
			input: "0X1F",
			delim: DelimiterComma,
			want:  true,
		},
		"version string": {
			input: "1.2.3",
			delim: DelimiterComma,
			want:  true,
		},
		"colon": {
			input: "a:b",
			delim: DelimiterComma,
			want:  false,
		},
		"bracket": {
			input: "a[0]",
			delim: DelimiterComma,
			want:  false,
		},
		"brace": {
			input: "{x}",
			delim: DelimiterComma,
			want:  false,
		},
		"quote": {
			input: `say "hi"`,
			delim: DelimiterComma,
			want:  false,
		},
		"backslash": {
			input: `a\b`,
			delim: DelimiterComma,
			want:  false,
		},
		"newline": {
			input: "a\nb",
			delim: DelimiterComma,
			want:  false,
		},
		"tab under comma delimiter": {
			input: "a\tb",
			delim: DelimiterComma,
			want:  false,
		},
		"tab under tab delimiter": {
			input: "a\tb",
			delim: DelimiterTab,
			want:  false,
		},
		"comma under comma delimiter": {
			input: "a,b",
			delim: DelimiterComma,
			want:  false,
		},
		"comma under tab delimiter": {
			input: "a,b",
			delim: DelimiterTab,
			want:  true,
		},
		"comma under pipe delimiter": {
			input: "a,b",
			delim: DelimiterPipe,
			want:  true,
		},
		"pipe under pipe delimiter": {
			input: "a|b",
			delim: DelimiterPipe,
			want:  false,
		},
		"pipe under comma delimiter": {
			input: "a|b",
			delim: DelimiterComma,
			want:  true,
		},
		"lone hyphen": {
			input: "-",
			delim: DelimiterComma,
			want:  false,
		},
		"hyphen space prefix": {
			input: "- item",
			delim: DelimiterComma,
			want:  false,
		},
		"hyphenated word": {
			input: "-foo",
			delim: DelimiterComma,
			want:  true,
		},
		"unicode": {
			input: "héllo",
			delim: DelimiterComma,
			want:  true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, safeUnquoted(tc.input, tc.delim))
		})
	}
}

func TestEncodeScalar(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value Value
		want  string
	}{
		"null": {
			value: Null(),
			want:  "null",
		},
		"true": {
			value: BoolValue(true),
			want:  "true",
		},
		"false": {
			value: BoolValue(false),
			want:  "false",
		},
		"int": {
			value: IntValue(-17),
			want:  "-17",
		},
		"float": {
			value: FloatValue(9.99),
			want:  "9.99",
		},
		"large int from float": {
			value: FloatValue(1e6),
			want:  "1000000",
		},
		"small float expands": {
			value: FloatValue(1e-6),
			want:  "0.000001",
		},
		"negative zero collapses": {
			value: FloatValue(negZero()),
			want:  "0",
		},
		"huge magnitude stays plain decimal": {
			value: FloatValue(1e21),
			want:  "1000000000000000000000",
		},
		"plain string": {
			value: StringValue("reading"),
			want:  "reading",
		},
		"numeric string quoted": {
			value: StringValue("42"),
			want:  `"42"`,
		},
		"keyword string quoted": {
			value: StringValue("true"),
			want:  `"true"`,
		},
		"escapes": {
			value: StringValue("a\tb\nc\"d\\e"),
			want:  `"a\tb\nc\"d\\e"`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, encodeScalar(tc.value, DelimiterComma))
		})
	}
}

func negZero() float64 {
	z := 0.0

	return -z
}

func TestEncodeKey(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"identifier":      {input: "name", want: "name"},
		"underscore":      {input: "_id", want: "_id"},
		"dotted":          {input: "a.b.c", want: "a.b.c"},
		"digits inside":   {input: "k8s", want: "k8s"},
		"empty quoted":    {input: "", want: `""`},
		"leading digit":   {input: "1abc", want: `"1abc"`},
		"space":           {input: "my key", want: `"my key"`},
		"keyword-looking": {input: "null", want: "null"},
		"colon":           {input: "a:b", want: `"a:b"`},
		"unicode quoted":  {input: "clé", want: `"clé"`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, encodeKey(tc.input))
		})
	}
}

func TestParseScalarToken(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  Value
	}{
		"null":             {input: "null", want: Null()},
		"true":             {input: "true", want: BoolValue(true)},
		"false":            {input: "false", want: BoolValue(false)},
		"mixed case null":  {input: "NULL", want: StringValue("NULL")},
		"capital True":     {input: "True", want: StringValue("True")},
		"int":              {input: "42", want: IntValue(42)},
		"negative int":     {input: "-7", want: IntValue(-7)},
		"float":            {input: "9.99", want: FloatValue(9.99)},
		"exponent":         {input: "1e5", want: IntValue(100000)},
		"negative exp":     {input: "1e-6", want: FloatValue(1e-6)},
		"octal-like":       {input: "0123", want: StringValue("0123")},
		"hex":              {input: "0x1f", want: StringValue("0x1f")},
		"binary":           {input: "0b101", want: StringValue("0b101")},
		"word":             {input: "hello", want: StringValue("hello")},
		"quoted":           {input: `"42"`, want: StringValue("42")},
		"quoted escapes":   {input: `"a\nb"`, want: StringValue("a\nb")},
		"empty":            {input: "", want: StringValue("")},
		"surrounding trim": {input: "  hi  ", want: StringValue("hi")},
		"zero":             {input: "0", want: IntValue(0)},
		"huge int widens":  {input: "9223372036854775808", want: FloatValue(9223372036854775808)},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parseScalarToken(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestParseScalarTokenErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"unterminated quote":  `"abc`,
		"bad escape":          `"a\qb"`,
		"dangling backslash":  `"a\`,
		"text after close":    `"a" b`,
		"number out of range": "1e999",
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := parseScalarToken(input)
			require.Error(t, err)
		})
	}
}

func TestUnescapeRejectsUnknownEscapes(t *testing.T) {
	t.Parallel()

	_, err := unescape(`a\x`)
	require.ErrorIs(t, err, errBadEscape)
}

func TestQuotingMinimality(t *testing.T) {
	t.Parallel()

	// Strings the encoder leaves unquoted must decode back to themselves.
	inputs := []string{"hello", "two words", "True", "1.2.3", "0X1F", "-foo", "héllo"}

	for _, s := range inputs {
		require.True(t, safeUnquoted(s, DelimiterComma), "%q should be safe unquoted", s)

		got, err := parseScalarToken(s)
		require.NoError(t, err)
		assert.True(t, StringValue(s).Equal(got), "%q should decode to itself", s)
	}
}
