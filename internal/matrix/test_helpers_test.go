package matrix

import (
	"strconv"
	"testing"
)

// seqMatrix builds an n×n matrix holding "1".."n*n" row-major.
func seqMatrix(t *testing.T, n int) Matrix {
	t.Helper()
	cells := make([]string, n*n)
	for i := range cells {
		cells[i] = strconv.Itoa(i + 1)
	}
	m, err := New(cells)
	if err != nil {
		t.Fatalf("New(%d cells) failed: %v", len(cells), err)
	}
	return m
}

// rows builds a matrix from rows of ints.
func rows(t *testing.T, in ...[]int) Matrix {
	t.Helper()
	out := make([][]string, len(in))
	for i, row := range in {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = strconv.Itoa(v)
		}
	}
	m, err := FromRows(out)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	return m
}
