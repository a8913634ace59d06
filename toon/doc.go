// Package toon implements encoding and decoding of TOON (Token-Oriented
// Object Notation), a compact indentation-structured interchange format
// for JSON-equivalent data, optimized for minimum token count through
// language-model tokenizers.
//
// TOON elides the structural tokens JSON repeats: braces, array
// separators, and per-row key repetition. Arrays of uniform scalar-valued
// objects collapse to a tabular form whose keys appear once in the
// header:
//
//	items[2]{sku,qty,price}:
//	  A1,2,9.99
//	  B2,1,14.5
//
// Arrays of scalars render inline ("tags[2]: reading,gaming") and
// everything else falls back to a YAML-like list form. Every layout
// decision the encoder makes is inverted losslessly by the decoder.
//
// # Encoding
//
//	doc := map[string]any{"tags": []any{"go", "toon"}}
//
//	out, err := toon.Marshal(doc)
//	// tags[2]: go,toon
//
// Use [NewObject] instead of a plain map to control field order. Encoder
// behavior is configured at construction:
//
//	enc, err := toon.NewEncoder(
//	    toon.WithIndent(2),
//	    toon.WithDelimiter(toon.DelimiterTab),
//	)
//
// # Decoding
//
//	val, err := toon.Decode(data)
//
// Decoding is strict by default: declared array lengths must match the
// observed element counts, and indentation must be exact. Pass
// [WithStrict](false) to tolerate count drift.
//
// Both operations are pure: no I/O, no partial output, and safe
// concurrent use of a single Encoder or Decoder.
package toon
