package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is an immutable N×N grid of opaque JSON-encoded elements.
// Cells are stored row-major; the zero value is the valid 0×0 matrix.
type Matrix struct {
	n     int
	cells []string
}

// New builds a Matrix from a row-major listing of cells.
// The number of cells must be a perfect square; 0 yields the 0×0 matrix.
// The slice is copied, so later changes by the caller are not observed.
func New(cells []string) (Matrix, error) {
	edge, ok := squareEdge(len(cells))
	if !ok {
		return Matrix{}, fmt.Errorf("%w: %d cells", ErrNotSquare, len(cells))
	}
	return Matrix{n: edge, cells: append([]string(nil), cells...)}, nil
}

// FromRows builds a Matrix from explicit rows. Every row must have exactly
// len(rows) elements.
func FromRows(rows [][]string) (Matrix, error) {
	n := len(rows)
	cells := make([]string, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Matrix{}, fmt.Errorf("%w: row %d has %d elements, want %d", ErrNotSquare, i, len(row), n)
		}
		cells = append(cells, row...)
	}
	return Matrix{n: n, cells: cells}, nil
}

// Size returns N, the number of rows (and columns).
func (m Matrix) Size() int {
	return m.n
}

// At returns the element at row r, column c. It panics when either index is
// outside [0, Size()).
func (m Matrix) At(r, c int) string {
	if r < 0 || r >= m.n || c < 0 || c >= m.n {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range for %dx%d", r, c, m.n, m.n))
	}
	return m.cells[r*m.n+c]
}

// row returns a copy of row r.
func (m Matrix) row(r int) []string {
	if r < 0 || r >= m.n {
		panic(fmt.Sprintf("matrix: row %d out of range for %dx%d", r, m.n, m.n))
	}
	return append([]string(nil), m.cells[r*m.n:(r+1)*m.n]...)
}

// rows returns a copy of the matrix as a slice of rows.
func (m Matrix) rows() [][]string {
	rows := make([][]string, m.n)
	for r := range rows {
		rows[r] = m.row(r)
	}
	return rows
}

// Cells returns a copy of the row-major flattening of the matrix.
func (m Matrix) Cells() []string {
	return append([]string(nil), m.cells...)
}

// JSON serialises the flattened matrix as a JSON array literal whose
// elements are separated by ", ".
func (m Matrix) JSON() string {
	return "[" + strings.Join(m.cells, ", ") + "]"
}

// String implements fmt.Stringer.
func (m Matrix) String() string {
	return m.JSON()
}

// squareEdge reports the integer square root of n and whether n is a
// perfect square.
func squareEdge(n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	edge := int(math.Sqrt(float64(n)))
	// Correct float rounding at the edges of exactly representable range.
	for edge*edge > n {
		edge--
	}
	for (edge+1)*(edge+1) <= n {
		edge++
	}
	return edge, edge*edge == n
}
