package toon

// arrayLayout is the encoder's presentation choice for an array.
type arrayLayout int

const (
	// layoutInline renders all elements on the header line. Chosen when
	// every element is a scalar; the empty array is inline with count 0.
	layoutInline arrayLayout = iota
	// layoutTabular renders one row per element under a field-list
	// header. Chosen when every element is an object with the same keys
	// in the same order as the first, and every field value is a scalar.
	layoutTabular
	// layoutList renders one "- " item per element. The fallback for
	// everything else.
	layoutList
)

// classifyArray picks the layout for elems. The choice is a pure function
// of the element kinds and object key sequences.
func classifyArray(elems []Value) arrayLayout {
	if len(elems) == 0 {
		return layoutInline
	}

	if allScalars(elems) {
		return layoutInline
	}

	if tabularUniform(elems) {
		return layoutTabular
	}

	return layoutList
}

func allScalars(elems []Value) bool {
	for _, e := range elems {
		if !e.IsScalar() {
			return false
		}
	}

	return true
}

// tabularUniform reports whether elems is a non-empty sequence of objects
// sharing the first element's key set in the same order, with every field
// value a scalar.
func tabularUniform(elems []Value) bool {
	first := elems[0]
	if first.Kind() != KindObject || first.Object().Len() == 0 {
		return false
	}

	keys := first.Object().Keys()

	for _, e := range elems {
		if e.Kind() != KindObject {
			return false
		}

		fields := e.Object().Fields()
		if len(fields) != len(keys) {
			return false
		}

		for i, f := range fields {
			if f.Key != keys[i] || !f.Value.IsScalar() {
				return false
			}
		}
	}

	return true
}
