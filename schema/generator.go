package schema

import (
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/toon/toon"
)

// Sentinel errors returned by the generator.
var (
	ErrInvalidDocument = errors.New("invalid document")
	ErrReadInput       = errors.New("read input")
	ErrWriteOutput     = errors.New("write output")
)

// Generator produces JSON Schema from TOON documents by structural
// inference: object fields become properties, uniform arrays become typed
// items, and scalar kinds map to JSON Schema primitive types.
type Generator struct {
	decoder     *toon.Decoder
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithDescription sets the schema description.
func WithDescription(desc string) Option {
	return func(g *Generator) {
		g.description = desc
	}
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) {
		g.id = id
	}
}

// WithStrict sets additionalProperties to false on objects.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// WithDecoder sets the decoder used for the TOON inputs, carrying indent
// and strictness settings.
func WithDecoder(d *toon.Decoder) Option {
	return func(g *Generator) {
		g.decoder = d
	}
}

// Generate produces a JSON Schema from one or more TOON documents. With
// several inputs the per-document schemas merge with union semantics.
func (g *Generator) Generate(inputs ...[]byte) (*jsonschema.Schema, error) {
	var result *jsonschema.Schema

	if len(inputs) == 0 {
		result = &jsonschema.Schema{}
	} else {
		var schemas []*jsonschema.Schema

		for i, input := range inputs {
			schema, err := g.generateSingle(input)
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}

			schemas = append(schemas, schema)
		}

		result = schemas[0]

		for i := 1; i < len(schemas); i++ {
			result = mergeSchemas(result, schemas[i])
		}
	}

	result.Schema = "http://json-schema.org/draft-07/schema#"

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	if (result.Type == typeObject || result.Properties != nil) && result.AdditionalProperties == nil {
		result.AdditionalProperties = g.additionalProperties()
	}

	return result, nil
}

// GenerateValue produces a schema from an already-decoded Value.
func (g *Generator) GenerateValue(v toon.Value) *jsonschema.Schema {
	return g.walkValue(v)
}

// generateSingle decodes one TOON input and infers its schema.
func (g *Generator) generateSingle(input []byte) (*jsonschema.Schema, error) {
	dec := g.decoder
	if dec == nil {
		var err error

		dec, err = toon.NewDecoder()
		if err != nil {
			return nil, err
		}
	}

	v, err := dec.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return g.walkValue(v), nil
}

// walkValue recursively infers a schema from a Value.
func (g *Generator) walkValue(v toon.Value) *jsonschema.Schema {
	switch v.Kind() {
	case toon.KindObject:
		return g.walkObject(v.Object())
	case toon.KindArray:
		return &jsonschema.Schema{
			Type:  typeArray,
			Items: g.inferItems(v.Array()),
		}
	default:
		return g.walkScalar(v)
	}
}

// walkObject maps an object's fields to schema properties, preserving
// field order.
func (g *Generator) walkObject(obj *toon.Object) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:                 typeObject,
		AdditionalProperties: g.additionalProperties(),
	}

	if obj.Len() == 0 {
		return schema
	}

	schema.Properties = make(map[string]*jsonschema.Schema, obj.Len())

	var order []string

	for _, f := range obj.Fields() {
		schema.Properties[f.Key] = g.walkValue(f.Value)
		order = append(order, f.Key)
	}

	schema.PropertyOrder = order

	return schema
}

// inferItems merges element schemas into one items schema. All-object
// sequences merge their property sets; scalar sequences widen their
// types. Empty sequences carry no items constraint.
func (g *Generator) inferItems(elems []toon.Value) *jsonschema.Schema {
	if len(elems) == 0 {
		return nil
	}

	allObjects := true

	for _, e := range elems {
		if e.Kind() != toon.KindObject {
			allObjects = false

			break
		}
	}

	if allObjects {
		result := g.walkValue(elems[0])

		for _, e := range elems[1:] {
			result = mergeSchemas(result, g.walkValue(e))
		}

		return result
	}

	var resultType string

	for i, e := range elems {
		elemType := scalarType(e)
		if i == 0 {
			resultType = elemType

			continue
		}

		resultType = widenType(resultType, elemType)
	}

	if resultType == "" {
		return nil
	}

	return &jsonschema.Schema{Type: resultType}
}

// walkScalar maps a scalar Value to its JSON Schema primitive type.
// Null infers no constraint.
func (g *Generator) walkScalar(v toon.Value) *jsonschema.Schema {
	t := scalarType(v)
	if t == "" {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{Type: t}
}

func (g *Generator) additionalProperties() *jsonschema.Schema {
	if g.strict {
		return falseSchema()
	}

	return trueSchema()
}
