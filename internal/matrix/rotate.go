package matrix

// Rotate returns m with every concentric ring shifted one position
// clockwise. Each ring is walked top edge, right edge, bottom edge, left
// edge, carrying the element pushed off one edge into the next. A ring with
// fewer than two rows or columns (the centre of an odd-sized matrix) stays
// in place. m is not modified.
//
// For 2×2 and smaller this is a quarter turn. For larger matrices a ring of
// side k returns to its start after 4(k-1) applications; see CycleLength.
func Rotate(m Matrix) Matrix {
	n := m.Size()
	out := Matrix{n: n, cells: m.Cells()}
	at := m.At
	set := func(r, c int, v string) { out.cells[r*n+c] = v }

	top, left := 0, 0
	bottom, right := n-1, n-1

	for left < right && top < bottom {
		carry := at(top+1, left)

		for i := left; i <= right; i++ {
			next := at(top, i)
			set(top, i, carry)
			carry = next
		}
		top++

		for i := top; i <= bottom; i++ {
			next := at(i, right)
			set(i, right, carry)
			carry = next
		}
		right--

		for i := right; i >= left; i-- {
			next := at(bottom, i)
			set(bottom, i, carry)
			carry = next
		}
		bottom--

		for i := bottom; i >= top; i-- {
			next := at(i, left)
			set(i, left, carry)
			carry = next
		}
		left++
	}
	return out
}

// CycleLength returns the number of Rotate applications after which an
// n×n matrix is back in its original arrangement: the least common
// multiple of the ring perimeters. It is 1 for n < 2.
func CycleLength(n int) int {
	cycle := 1
	for side := n; side >= 2; side -= 2 {
		cycle = lcm(cycle, 4*(side-1))
	}
	return cycle
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
