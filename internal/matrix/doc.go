// Package matrix parses JSON-encoded square matrices and rotates them.
//
// A payload such as `[1,2,3,4]` is a flat, row-major listing of an N×N
// matrix. Parse validates it and returns an Outcome, a two-state value that
// is either valid (carrying the Matrix) or invalid. Rotate turns a Matrix 90°
// clockwise by shifting each concentric ring one position.
//
// Elements are opaque. Parse normalises each one to the text that
// JSON.stringify would produce for it, and every later stage moves those
// strings around without looking inside them:
//
//	out, ok := matrix.Parse(`[1,2,3,4]`).Map(matrix.Rotate).Unwrap()
//	// out == "[3, 1, 4, 2]", ok == true
package matrix
