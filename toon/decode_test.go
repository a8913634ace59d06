package toon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/toon/stringtest"
)

func TestDecodeDocuments(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		opts  []DecoderOption
		want  Value
	}{
		"empty document": {
			input: "",
			want:  ObjectValue(NewObject()),
		},
		"blank lines only": {
			input: "\n  \n",
			want:  ObjectValue(NewObject()),
		},
		"scalar fields": {
			input: stringtest.JoinLF(
				"name: Ada",
				"age: 36",
				"score: 9.5",
				"ok: true",
				"missing: null",
			),
			want: ObjectValue(NewObject(
				Field{Key: "name", Value: StringValue("Ada")},
				Field{Key: "age", Value: IntValue(36)},
				Field{Key: "score", Value: FloatValue(9.5)},
				Field{Key: "ok", Value: BoolValue(true)},
				Field{Key: "missing", Value: Null()},
			)),
		},
		"inline array": {
			input: "tags[2]: reading,gaming",
			want: ObjectValue(NewObject(
				Field{Key: "tags", Value: ArrayValue(StringValue("reading"), StringValue("gaming"))},
			)),
		},
		"empty array": {
			input: "tags[0]:",
			want: ObjectValue(NewObject(
				Field{Key: "tags", Value: ArrayValue()},
			)),
		},
		"empty object value": {
			input: "meta:",
			want: ObjectValue(NewObject(
				Field{Key: "meta", Value: ObjectValue(NewObject())},
			)),
		},
		"tabular array": {
			input: stringtest.JoinLF(
				"items[2]{sku,qty,price}:",
				"  A1,2,9.99",
				"  B2,1,14.5",
			),
			want: ObjectValue(NewObject(
				Field{Key: "items", Value: ArrayValue(
					ObjectValue(NewObject(
						Field{Key: "sku", Value: StringValue("A1")},
						Field{Key: "qty", Value: IntValue(2)},
						Field{Key: "price", Value: FloatValue(9.99)},
					)),
					ObjectValue(NewObject(
						Field{Key: "sku", Value: StringValue("B2")},
						Field{Key: "qty", Value: IntValue(1)},
						Field{Key: "price", Value: FloatValue(14.5)},
					)),
				)},
			)),
		},
		"list array": {
			input: stringtest.JoinLF(
				"items[2]:",
				"  - id: 1",
				"    name: First",
				"  - id: 2",
				"    name: Second",
				"    extra: true",
			),
			want: ObjectValue(NewObject(
				Field{Key: "items", Value: ArrayValue(
					ObjectValue(NewObject(
						Field{Key: "id", Value: IntValue(1)},
						Field{Key: "name", Value: StringValue("First")},
					)),
					ObjectValue(NewObject(
						Field{Key: "id", Value: IntValue(2)},
						Field{Key: "name", Value: StringValue("Second")},
						Field{Key: "extra", Value: BoolValue(true)},
					)),
				)},
			)),
		},
		"tabular first in list": {
			input: stringtest.JoinLF(
				"items[1]:",
				"  - users[2]{id,name}:",
				"      1,Ada",
				"      2,Bob",
				"    status: active",
			),
			want: ObjectValue(NewObject(
				Field{Key: "items", Value: ArrayValue(
					ObjectValue(NewObject(
						Field{Key: "users", Value: ArrayValue(
							ObjectValue(NewObject(
								Field{Key: "id", Value: IntValue(1)},
								Field{Key: "name", Value: StringValue("Ada")},
							)),
							ObjectValue(NewObject(
								Field{Key: "id", Value: IntValue(2)},
								Field{Key: "name", Value: StringValue("Bob")},
							)),
						)},
						Field{Key: "status", Value: StringValue("active")},
					)),
				)},
			)),
		},
		"tab delimiter marker": {
			input: "items[2\t]: a,b\tc,d",
			want: ObjectValue(NewObject(
				Field{Key: "items", Value: ArrayValue(StringValue("a,b"), StringValue("c,d"))},
			)),
		},
		"pipe delimiter marker": {
			input: "cols[2|]: a|b",
			want: ObjectValue(NewObject(
				Field{Key: "cols", Value: ArrayValue(StringValue("a"), StringValue("b"))},
			)),
		},
		"quoted values and keys": {
			input: stringtest.JoinLF(
				`"my key": "42"`,
				`v: "a,b"`,
				`w: "line\nbreak"`,
			),
			want: ObjectValue(NewObject(
				Field{Key: "my key", Value: StringValue("42")},
				Field{Key: "v", Value: StringValue("a,b")},
				Field{Key: "w", Value: StringValue("line\nbreak")},
			)),
		},
		"nested object blocks": {
			input: stringtest.JoinLF(
				"server:",
				"  host: localhost",
				"  tls:",
				"    enabled: true",
			),
			want: ObjectValue(NewObject(
				Field{Key: "server", Value: ObjectValue(NewObject(
					Field{Key: "host", Value: StringValue("localhost")},
					Field{Key: "tls", Value: ObjectValue(NewObject(
						Field{Key: "enabled", Value: BoolValue(true)},
					))},
				))},
			)),
		},
		"root scalar": {
			input: "42",
			want:  IntValue(42),
		},
		"root quoted scalar": {
			input: `"a: b"`,
			want:  StringValue("a: b"),
		},
		"root inline array": {
			input: "[3]: 1,2,3",
			want:  ArrayValue(IntValue(1), IntValue(2), IntValue(3)),
		},
		"root list with nested arrays": {
			input: stringtest.JoinLF(
				"[2]:",
				"  - [1]: 1",
				"  - x",
			),
			want: ArrayValue(
				ArrayValue(IntValue(1)),
				StringValue("x"),
			),
		},
		"bare hyphen is empty object": {
			input: stringtest.JoinLF(
				"[1]:",
				"  -",
			),
			want: ArrayValue(ObjectValue(NewObject())),
		},
		"crlf input accepted": {
			input: stringtest.JoinCRLF("a: 1", "b: 2"),
			want: ObjectValue(NewObject(
				Field{Key: "a", Value: IntValue(1)},
				Field{Key: "b", Value: IntValue(2)},
			)),
		},
		"lenient count drift": {
			input: "tags[3]: a,b",
			opts:  []DecoderOption{WithStrict(false)},
			want: ObjectValue(NewObject(
				Field{Key: "tags", Value: ArrayValue(StringValue("a"), StringValue("b"))},
			)),
		},
		"wider indent": {
			input: stringtest.JoinLF(
				"a:",
				"    b: 1",
			),
			opts: []DecoderOption{WithDecodeIndent(4)},
			want: ObjectValue(NewObject(
				Field{Key: "a", Value: ObjectValue(NewObject(
					Field{Key: "b", Value: IntValue(1)},
				))},
			)),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode([]byte(tc.input), tc.opts...)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		opts  []DecoderOption
		want  error
		line  int
	}{
		"rejected length marker": {
			input: "items[#2]: a,b",
			want:  ErrSyntax,
			line:  1,
		},
		"rejected trailing marker": {
			input: "items[2#]: a,b",
			want:  ErrSyntax,
			line:  1,
		},
		"missing colon": {
			input: "items[2] a,b",
			want:  ErrSyntax,
			line:  1,
		},
		"missing close bracket": {
			input: "items[2: a,b",
			want:  ErrSyntax,
			line:  1,
		},
		"missing close brace": {
			input: "items[1]{a: 1",
			want:  ErrSyntax,
			line:  1,
		},
		"empty field list": {
			input: stringtest.JoinLF("items[1]{}:", "  1"),
			want:  ErrSyntax,
			line:  1,
		},
		"count mismatch inline too few": {
			input: "tags[3]: a,b",
			want:  ErrCountMismatch,
			line:  1,
		},
		"count mismatch inline too many": {
			input: "tags[1]: a,b",
			want:  ErrCountMismatch,
			line:  1,
		},
		"count mismatch tabular": {
			input: stringtest.JoinLF(
				"items[2]{id}:",
				"  1",
			),
			want: ErrCountMismatch,
			line: 1,
		},
		"count mismatch list": {
			input: stringtest.JoinLF(
				"items[1]:",
				"  - a",
				"  - b",
			),
			want: ErrCountMismatch,
			line: 1,
		},
		"count mismatch empty body": {
			input: "items[2]:",
			want:  ErrCountMismatch,
			line:  1,
		},
		"row width mismatch": {
			input: stringtest.JoinLF(
				"items[1]{a,b}:",
				"  1",
			),
			want: ErrSyntax,
			line: 2,
		},
		"misindented line": {
			input: stringtest.JoinLF(
				"a: 1",
				"   b: 2",
			),
			want: ErrSyntax,
			line: 2,
		},
		"tab indentation": {
			input: "a: 1\n\tb: 2",
			want:  ErrSyntax,
			line:  2,
		},
		"unterminated quote": {
			input: `v: "abc`,
			want:  ErrSyntax,
			line:  1,
		},
		"unknown escape": {
			input: `v: "a\qb"`,
			want:  ErrSyntax,
			line:  1,
		},
		"garbage after quoted value": {
			input: `v: "a" b`,
			want:  ErrSyntax,
			line:  1,
		},
		"empty unquoted key": {
			input: ": 1",
			want:  ErrSyntax,
			line:  1,
		},
		"scalar line in object block": {
			input: stringtest.JoinLF(
				"a: 1",
				"bogus",
			),
			want: ErrSyntax,
			line: 2,
		},
		"list item in object block": {
			input: stringtest.JoinLF(
				"a: 1",
				"- b",
			),
			want: ErrSyntax,
			line: 2,
		},
		"object field under list header": {
			input: stringtest.JoinLF(
				"items[1]:",
				"  a: 1",
			),
			want: ErrSyntax,
			line: 2,
		},
		"content after root scalar": {
			input: stringtest.JoinLF(
				"42",
				"43",
			),
			want: ErrSyntax,
		},
		"unexpected deep indent": {
			input: stringtest.JoinLF(
				"a:",
				"      b: 1",
			),
			want: ErrSyntax,
			line: 2,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode([]byte(tc.input), tc.opts...)
			require.ErrorIs(t, err, tc.want)

			if tc.line == 0 {
				return
			}

			var serr *SyntaxError
			if errors.As(err, &serr) {
				assert.Equal(t, tc.line, serr.Line)

				return
			}

			var cerr *CountMismatchError
			if errors.As(err, &cerr) {
				assert.Equal(t, tc.line, cerr.Line)
			}
		})
	}
}

func TestDecodeStrictCountAtHeaderLine(t *testing.T) {
	t.Parallel()

	// The mismatch reports the header's line, not the body's.
	input := stringtest.JoinLF(
		"pad: 1",
		"items[2]:",
		"  - a",
	)

	_, err := Decode([]byte(input))
	require.ErrorIs(t, err, ErrCountMismatch)

	var cerr *CountMismatchError

	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Line)
	assert.Equal(t, 2, cerr.Declared)
	assert.Equal(t, 1, cerr.Actual)
}

func TestDecodeLenientMisindentation(t *testing.T) {
	t.Parallel()

	// Three spaces floor to depth 1 when strictness is off.
	input := stringtest.JoinLF(
		"a:",
		"   b: 1",
	)

	got, err := Decode([]byte(input), WithStrict(false))
	require.NoError(t, err)

	want := ObjectValue(NewObject(
		Field{Key: "a", Value: ObjectValue(NewObject(
			Field{Key: "b", Value: IntValue(1)},
		))},
	))

	assert.True(t, want.Equal(got))
}

func TestDecodeDuplicateKeysLastWins(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte(stringtest.JoinLF("a: 1", "a: 2")))
	require.NoError(t, err)

	v, ok := got.Object().Get("a")
	require.True(t, ok)
	assert.True(t, IntValue(2).Equal(v))
	assert.Equal(t, 1, got.Object().Len())
}

func TestUnmarshalTargets(t *testing.T) {
	t.Parallel()

	data := []byte("a: 1")

	var m map[string]any

	require.NoError(t, Unmarshal(data, &m))
	assert.Equal(t, map[string]any{"a": int64(1)}, m)

	var v Value

	require.NoError(t, Unmarshal(data, &v))
	assert.Equal(t, KindObject, v.Kind())

	var anyTarget any

	require.NoError(t, Unmarshal(data, &anyTarget))
	assert.Equal(t, map[string]any{"a": int64(1)}, anyTarget)

	var arr []any

	require.NoError(t, Unmarshal([]byte("[2]: 1,2"), &arr))
	assert.Equal(t, []any{int64(1), int64(2)}, arr)

	err := Unmarshal(data, &arr)
	require.ErrorIs(t, err, ErrUnsupportedValue)

	err = Unmarshal(data, m)
	require.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestNewDecoderValidation(t *testing.T) {
	t.Parallel()

	_, err := NewDecoder(WithDecodeIndent(-2))
	require.ErrorIs(t, err, ErrInvalidOption)
}
