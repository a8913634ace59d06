// Package schema infers JSON Schema (Draft 7) from TOON documents.
//
// Inference is structural: object fields become properties with their
// order preserved, arrays become typed items (widening integer and number
// when elements mix), and scalar kinds map to the JSON Schema primitive
// types. Null values infer no constraint. Multiple documents merge with
// union semantics, so a schema can be generated from a corpus of samples:
//
//	gen := schema.NewGenerator(schema.WithTitle("Orders"))
//
//	s, err := gen.Generate(docA, docB)
//
// [Validate] closes the loop, checking a decoded TOON document against a
// schema, inferred or hand-written.
package schema
