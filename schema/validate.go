package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/toon/toon"
)

// Validate checks a decoded TOON document against a JSON Schema.
// Validation runs on the document's plain-Go representation, so field
// order is irrelevant.
func Validate(s *jsonschema.Schema, v toon.Value) error {
	resolved, err := s.Resolve(nil)
	if err != nil {
		return fmt.Errorf("%w: resolving schema: %w", ErrInvalidDocument, err)
	}

	err = resolved.Validate(v.Interface())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ParseSchema unmarshals a JSON Schema document.
func ParseSchema(data []byte) (*jsonschema.Schema, error) {
	var s jsonschema.Schema

	err := json.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return &s, nil
}
