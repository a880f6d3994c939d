// Package matmul implements the matrix multiplication strategies measured by
// algobench: a naive triple loop, a transposed (cache friendly) triple loop
// and Strassen's recursive algorithm with a cubic base case.
//
// All strategies use exact integer arithmetic, never mutate their operands
// and return freshly allocated products.
package matmul

import "fmt"

// Matrix is a dense row-major integer matrix. All rows must have the same
// length. A matrix without rows has zero columns.
type Matrix [][]int

// New returns a zeroed rows x cols matrix backed by one contiguous slice.
func New(rows, cols int) Matrix {
	if rows <= 0 {
		return Matrix{}
	}
	if cols < 0 {
		cols = 0
	}
	backing := make([]int, rows*cols)
	m := make(Matrix, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	c := New(m.Rows(), m.Cols())
	for i := range m {
		copy(c[i], m[i])
	}
	return c
}

// Equal reports whether m and o have the same shape and elements.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// String returns the dimensions, e.g. "3x5".
func (m Matrix) String() string {
	return fmt.Sprintf("%dx%d", m.Rows(), m.Cols())
}

// Transpose returns the transpose of m.
func Transpose(m Matrix) Matrix {
	rows, cols := m.Rows(), m.Cols()
	t := New(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// validate checks that every row of m has the same length.
func validate(m Matrix) error {
	cols := m.Cols()
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), cols)
		}
	}
	return nil
}

// checkProduct checks that a and b are rectangular and conformable.
// A matrix without rows is conformable with anything and yields an empty
// product.
func checkProduct(a, b Matrix) error {
	if err := validate(a); err != nil {
		return fmt.Errorf("left operand: %w", err)
	}
	if err := validate(b); err != nil {
		return fmt.Errorf("right operand: %w", err)
	}
	if a.Rows() == 0 {
		return nil
	}
	if a.Cols() != b.Rows() {
		return fmt.Errorf("%w: %s times %s", ErrDimensionMismatch, a, b)
	}
	return nil
}
