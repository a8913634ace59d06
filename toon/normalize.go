package toon

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"
)

// Valuer is implemented by host types that know their own TOON
// representation. The normalizer consults it before any other convention.
type Valuer interface {
	ToonValue() (Value, error)
}

// FromGo normalizes an arbitrary Go value into the TOON data model.
//
// Recognized conventions, in order: [Valuer]; [Value] and [*Object]
// pass-through; [time.Time] as RFC 3339 with offset; [json.Number];
// [encoding.TextMarshaler]; the built-in scalar, slice, and string-keyed
// map types. Anything else is routed through its JSON representation, so
// struct types with json tags normalize naturally. Values that none of
// these conventions cover return an error matching [ErrUnsupportedValue].
//
// Plain Go maps have no insertion order, so their keys normalize sorted;
// use [*Object] to control field order.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Valuer:
		return val.ToonValue()
	case Value:
		return val, nil
	case *Object:
		return ObjectValue(val), nil
	case Object:
		return ObjectValue(&val), nil
	case bool:
		return BoolValue(val), nil
	case string:
		return StringValue(val), nil
	case int:
		return IntValue(int64(val)), nil
	case int8:
		return IntValue(int64(val)), nil
	case int16:
		return IntValue(int64(val)), nil
	case int32:
		return IntValue(int64(val)), nil
	case int64:
		return IntValue(val), nil
	case uint:
		return normalizeUint(uint64(val))
	case uint8:
		return IntValue(int64(val)), nil
	case uint16:
		return IntValue(int64(val)), nil
	case uint32:
		return IntValue(int64(val)), nil
	case uint64:
		return normalizeUint(val)
	case float32:
		return FloatValue(float64(val)), nil
	case float64:
		return FloatValue(val), nil
	case time.Time:
		return StringValue(val.Format(time.RFC3339Nano)), nil
	case json.Number:
		return normalizeNumber(val)
	case []any:
		return normalizeSlice(val)
	case map[string]any:
		return normalizeMap(val)
	case encoding.TextMarshaler:
		text, err := val.MarshalText()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
		}

		return StringValue(string(text)), nil
	}

	return fromReflect(v)
}

// normalizeUint keeps unsigned integers in the int64 range as Int and
// widens the rest to Float when exactly representable.
func normalizeUint(u uint64) (Value, error) {
	if u <= math.MaxInt64 {
		return IntValue(int64(u)), nil
	}

	f := float64(u)
	if uint64(f) != u {
		return Value{}, fmt.Errorf("%w: uint64 %d overflows the numeric model", ErrUnsupportedValue, u)
	}

	return FloatValue(f), nil
}

func normalizeNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return IntValue(i), nil
	}

	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("%w: malformed number %q", ErrUnsupportedValue, string(n))
	}

	return FloatValue(f), nil
}

func normalizeSlice(s []any) (Value, error) {
	elems := make([]Value, len(s))

	for i, e := range s {
		v, err := FromGo(e)
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", i, err)
		}

		elems[i] = v
	}

	return ArrayValue(elems...), nil
}

func normalizeMap(m map[string]any) (Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	obj := NewObject()

	for _, k := range keys {
		v, err := FromGo(m[k])
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", k, err)
		}

		obj.Set(k, v)
	}

	return ObjectValue(obj), nil
}

// fromReflect handles typed slices, arrays, string-keyed maps, and
// pointers, then falls back to the JSON convention.
func fromReflect(v any) (Value, error) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}

		return FromGo(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())

		for i := range rv.Len() {
			e, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}

			elems[i] = e
		}

		return ArrayValue(elems...), nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("%w: map key type %s", ErrUnsupportedValue, rv.Type().Key())
		}

		m := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			m[k.String()] = rv.MapIndex(k).Interface()
		}

		return normalizeMap(m)
	}

	return fromJSON(v)
}

// fromJSON routes a value through its JSON representation. This is the
// "to JSON convention" for host objects: anything encoding/json can
// serialize, the normalizer can ingest.
func fromJSON(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %T: %w", ErrUnsupportedValue, v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var decoded any

	err = dec.Decode(&decoded)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %T: %w", ErrUnsupportedValue, v, err)
	}

	return FromGo(decoded)
}
