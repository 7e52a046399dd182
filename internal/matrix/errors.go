package matrix

import "errors"

// ErrMalformedField is the single failure kind of Parse. It covers payloads
// that are not JSON, JSON values that are not arrays, and arrays whose length
// is not a perfect square. Callers match it with errors.Is; the wrapped
// message carries the specific reason for logging.
var ErrMalformedField = errors.New("matrix: malformed field")

// ErrNotSquare is returned by New when the number of cells is not a
// perfect square, and by FromRows when a row length differs from the row count.
var ErrNotSquare = errors.New("matrix: cell count is not a perfect square")
