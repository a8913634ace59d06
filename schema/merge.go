package schema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// mergeSchemas merges two schemas using union semantics: properties from
// both schemas are included and conflicting types are widened.
func mergeSchemas(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	result := &jsonschema.Schema{}

	merged := widenType(schemaType(a), schemaType(b))
	if merged != "" {
		result.Type = merged
	}

	if a.Properties != nil || b.Properties != nil {
		mergeProperties(result, a, b)
	}

	// additionalProperties is fail-open: either side allowing wins.
	result.AdditionalProperties = mergeAdditionalProperties(a.AdditionalProperties, b.AdditionalProperties)

	switch {
	case a.Items != nil && b.Items != nil:
		result.Items = mergeSchemas(a.Items, b.Items)
	case a.Items != nil:
		result.Items = a.Items
	default:
		result.Items = b.Items
	}

	return result
}

// schemaType returns the effective type string from a schema.
func schemaType(s *jsonschema.Schema) string {
	if s.Type != "" {
		return s.Type
	}

	if len(s.Types) == 1 {
		return s.Types[0]
	}

	return ""
}

// mergeAdditionalProperties merges two additionalProperties values. Nil
// means unset, which defaults to allowing everything in JSON Schema, so
// nil or a true schema on either side makes the result permissive.
func mergeAdditionalProperties(a, b *jsonschema.Schema) *jsonschema.Schema {
	if a == nil && b == nil {
		return nil
	}

	if a == nil || b == nil || isTrueSchema(a) || isTrueSchema(b) {
		return trueSchema()
	}

	return a
}

// isTrueSchema checks if a schema is the "true" schema (validates
// everything).
func isTrueSchema(s *jsonschema.Schema) bool {
	if s == nil {
		return false
	}

	return s.Not == nil &&
		s.Type == "" &&
		len(s.Types) == 0 &&
		s.Properties == nil &&
		s.Items == nil
}

// propertyKeys returns property keys in PropertyOrder, then any remaining
// keys in an undefined order.
func propertyKeys(s *jsonschema.Schema) []string {
	if s.Properties == nil {
		return nil
	}

	seen := make(map[string]bool, len(s.PropertyOrder))

	var keys []string

	for _, k := range s.PropertyOrder {
		if _, ok := s.Properties[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	for k := range s.Properties {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	return keys
}

// mergeProperties merges properties from a and b into result using union
// semantics, keeping a's order first.
func mergeProperties(result, a, b *jsonschema.Schema) {
	result.Properties = make(map[string]*jsonschema.Schema)

	var order []string

	for _, k := range propertyKeys(a) {
		result.Properties[k] = a.Properties[k]
		order = append(order, k)
	}

	for _, k := range propertyKeys(b) {
		if existing, ok := result.Properties[k]; ok {
			result.Properties[k] = mergeSchemas(existing, b.Properties[k])
		} else {
			result.Properties[k] = b.Properties[k]
			order = append(order, k)
		}
	}

	result.PropertyOrder = order
}
