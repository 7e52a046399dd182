package matrix

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Parse decodes raw as a JSON array and arranges its elements row-major into
// a square Matrix. The array length must be a perfect square; the empty array
// is the 0×0 matrix. Anything else yields an invalid Outcome whose Err wraps
// ErrMalformedField.
//
// Element values are not type-checked. Each one is kept as its normalised
// JSON text (see the package documentation).
func Parse(raw string) Outcome {
	data := []byte(raw)
	if !json.Valid(data) {
		return Invalid(fmt.Errorf("%w: not valid JSON", ErrMalformedField))
	}

	// json.Valid guarantees at least one non-space byte.
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); trimmed[0] != '[' {
		return Invalid(fmt.Errorf("%w: not an array", ErrMalformedField))
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return Invalid(fmt.Errorf("%w: %v", ErrMalformedField, err))
	}

	if _, ok := squareEdge(len(elems)); !ok {
		return Invalid(fmt.Errorf("%w: length %d is not a perfect square", ErrMalformedField, len(elems)))
	}

	cells := make([]string, len(elems))
	for i, elem := range elems {
		cell, err := encodeElement(elem)
		if err != nil {
			return Invalid(fmt.Errorf("%w: element %d: %v", ErrMalformedField, i, err))
		}
		cells[i] = cell
	}

	m, err := New(cells)
	if err != nil {
		return Invalid(fmt.Errorf("%w: %v", ErrMalformedField, err))
	}
	return Valid(m)
}
