package schema

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/toon/toon"
)

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// scalarType returns the JSON Schema type string for a Value's kind.
// Returns an empty string for null (maximally permissive).
func scalarType(v toon.Value) string {
	switch v.Kind() {
	case toon.KindBool:
		return typeBoolean
	case toon.KindInt:
		return typeInteger
	case toon.KindFloat:
		return typeNumber
	case toon.KindString:
		return typeString
	case toon.KindArray:
		return typeArray
	case toon.KindObject:
		return typeObject
	}

	return ""
}

// widenType returns the widened type when merging two type strings.
// Returns empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	// Null/empty merges transparently.
	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	// Integer + number -> number.
	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	// All other combinations -> no constraint.
	return ""
}

// trueSchema returns a schema that validates everything (marshals to JSON
// true).
func trueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// falseSchema returns a schema that validates nothing (marshals to JSON
// false).
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
