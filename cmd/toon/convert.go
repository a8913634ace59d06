package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/toon/toon"
)

// yamlToValue parses a YAML document into a [toon.Value], preserving
// mapping key order so YAML documents convert to TOON shape-stably.
func yamlToValue(data []byte) (toon.Value, error) {
	var raw any

	err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return toon.Value{}, fmt.Errorf("%w: invalid yaml: %w", toon.ErrUnsupportedValue, err)
	}

	return yamlNodeToValue(raw)
}

// yamlNodeToValue converts goccy's ordered decode output. Mappings decode
// as [yaml.MapSlice], which keeps the textual key order.
func yamlNodeToValue(node any) (toon.Value, error) {
	switch n := node.(type) {
	case yaml.MapSlice:
		obj := toon.NewObject()

		for _, item := range n {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}

			v, err := yamlNodeToValue(item.Value)
			if err != nil {
				return toon.Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			obj.Set(key, v)
		}

		return toon.ObjectValue(obj), nil

	case []any:
		elems := make([]toon.Value, len(n))

		for i, e := range n {
			v, err := yamlNodeToValue(e)
			if err != nil {
				return toon.Value{}, fmt.Errorf("index %d: %w", i, err)
			}

			elems[i] = v
		}

		return toon.ArrayValue(elems...), nil

	case time.Time:
		// YAML timestamps keep their textual intent as RFC 3339 strings.
		return toon.FromGo(n)
	}

	return toon.FromGo(node)
}

// valueToYAML renders a decoded TOON document as YAML, preserving object
// field order via [yaml.MapSlice].
func valueToYAML(v toon.Value) ([]byte, error) {
	out, err := yaml.Marshal(valueToYAMLNode(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", toon.ErrUnsupportedValue, err)
	}

	return out, nil
}

func valueToYAMLNode(v toon.Value) any {
	switch v.Kind() {
	case toon.KindArray:
		elems := v.Array()
		out := make([]any, len(elems))

		for i, e := range elems {
			out[i] = valueToYAMLNode(e)
		}

		return out

	case toon.KindObject:
		fields := v.Object().Fields()
		out := make(yaml.MapSlice, len(fields))

		for i, f := range fields {
			out[i] = yaml.MapItem{Key: f.Key, Value: valueToYAMLNode(f.Value)}
		}

		return out
	}

	return v.Interface()
}

// schemaJSON marshals a generated schema for output.
func schemaJSON(s any) ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	return append(out, '\n'), nil
}
