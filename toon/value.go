package toon

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

// Value kinds, covering every JSON-equivalent datum.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}

	return "invalid"
}

// Value is the codec's internal representation of a JSON-equivalent datum.
//
// A Value is one of: null, bool, int64, finite float64, UTF-8 string, an
// ordered array of Values, or an ordered [Object]. The zero Value is null.
//
// Construct Values with [Null], [BoolValue], [IntValue], [FloatValue],
// [StringValue], [ArrayValue], and [ObjectValue], or from arbitrary Go
// values with [FromGo].
type Value struct {
	obj  *Object
	arr  []Value
	str  string
	num  int64
	fnum float64
	kind Kind
	b    bool
}

// Null returns the null Value.
func Null() Value {
	return Value{kind: KindNull}
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntValue returns an integer Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, num: i}
}

// FloatValue returns a floating-point Value. Non-finite inputs yield null,
// negative zero and integral values in int64 range collapse to [IntValue],
// so a constructed Value always satisfies the data model invariants.
func FloatValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}

	// The int64 range check uses exact float64 bounds: -2^63 is
	// representable, 2^63 is excluded.
	if f == math.Trunc(f) && f >= -9223372036854775808.0 && f < 9223372036854775808.0 {
		// Also collapses -0.0 to 0.
		return IntValue(int64(f))
	}

	return Value{kind: KindFloat, fnum: f}
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// ArrayValue returns an array Value holding the given elements in order.
func ArrayValue(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}

	return Value{kind: KindArray, arr: elems}
}

// ObjectValue returns an object Value backed by obj. A nil obj yields an
// empty object.
func ObjectValue(obj *Object) Value {
	if obj == nil {
		obj = NewObject()
	}

	return Value{kind: KindObject, obj: obj}
}

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Bool returns the boolean payload. It is only meaningful for [KindBool].
func (v Value) Bool() bool {
	return v.b
}

// Int returns the integer payload. It is only meaningful for [KindInt].
func (v Value) Int() int64 {
	return v.num
}

// Float returns the float payload. It is only meaningful for [KindFloat].
func (v Value) Float() float64 {
	return v.fnum
}

// Str returns the string payload. It is only meaningful for [KindString].
func (v Value) Str() string {
	return v.str
}

// Array returns the element slice. It is only meaningful for [KindArray].
// Callers must not mutate the returned slice.
func (v Value) Array() []Value {
	return v.arr
}

// Object returns the ordered object. It is only meaningful for [KindObject].
func (v Value) Object() *Object {
	return v.obj
}

// IsScalar reports whether the Value is null, bool, number, or string.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	}

	return false
}

// Equal reports deep content equality between two Values. Object field
// order is significant, matching the encoder's determinism guarantee.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.fnum == other.fnum
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}

		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case KindObject:
		return v.obj.equal(other.obj)
	}

	return false
}

// Interface converts the Value to plain Go data: nil, bool, int64, float64,
// string, []any, or map[string]any. Object field order is lost in the map
// representation.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.num
	case KindFloat:
		return v.fnum
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}

		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, f := range v.obj.Fields() {
			out[f.Key] = f.Value.Interface()
		}

		return out
	}

	return nil
}

// String renders a compact diagnostic representation of the Value.
// Use [Marshal] for the TOON rendering.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.fnum, 'f', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindArray:
		return "array(" + strconv.Itoa(len(v.arr)) + ")"
	case KindObject:
		return "object(" + strconv.Itoa(v.obj.Len()) + ")"
	}

	return "invalid"
}

// Field is a single key/value pair in an [Object].
type Field struct {
	Key   string
	Value Value
}

// Object is an ordered string-to-[Value] mapping. Field order is the
// insertion order and is preserved by the encoder, so two Objects with the
// same fields in a different order encode differently.
//
// Create instances with [NewObject]. The zero Object is not usable.
type Object struct {
	index  map[string]int
	fields []Field
}

// NewObject constructs an Object from the given fields in order. Duplicate
// keys keep the last value at the first key's position.
func NewObject(fields ...Field) *Object {
	o := &Object{
		index: make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}

	return o
}

// Set inserts or replaces the value for key. New keys append to the field
// order; existing keys keep their position.
func (o *Object) Set(key string, value Value) {
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = value

		return
	}

	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}

	return o.fields[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]

	return ok
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.fields)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}

	return keys
}

// Fields returns the fields in insertion order. Callers must not mutate the
// returned slice.
func (o *Object) Fields() []Field {
	return o.fields
}

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}

	for i, f := range o.fields {
		g := other.fields[i]
		if f.Key != g.Key || !f.Value.Equal(g.Value) {
			return false
		}
	}

	return true
}
