package matmul

import "fmt"

// DefaultThreshold is the dimension at or below which Strassen falls back to
// the naive product.
const DefaultThreshold = 64

// Strassen returns a*b using Strassen's algorithm. Operands must be square
// matrices of the same dimension n. Sub-problems of dimension <= threshold
// are multiplied naively; larger ones are split into quadrants, so n must
// stay even at every level above the threshold (any power of two works, see
// Pad). A threshold of 0 recurses down to 1x1 scalar products.
func Strassen(a, b Matrix, threshold int) (Matrix, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%s: %w: %d", opStrassen, ErrInvalidThreshold, threshold)
	}
	if err := checkProduct(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opStrassen, err)
	}
	if err := checkStrassenShape(a, b, threshold); err != nil {
		return nil, fmt.Errorf("%s: %w", opStrassen, err)
	}
	return strassen(a, b, threshold), nil
}

func checkStrassenShape(a, b Matrix, threshold int) error {
	n := a.Rows()
	if a.Cols() != n || b.Rows() != n || b.Cols() != n {
		return fmt.Errorf("%w: %s times %s, want two nxn operands", ErrUnsupportedShape, a, b)
	}
	for m := n; m > threshold && m > 1; m /= 2 {
		if m%2 != 0 {
			return fmt.Errorf("%w: dimension %d splits into odd size %d above threshold %d",
				ErrUnsupportedShape, n, m, threshold)
		}
	}
	return nil
}

func strassen(a, b Matrix, threshold int) Matrix {
	n := a.Rows()
	if n <= threshold {
		return naive(a, b)
	}
	if n == 1 {
		return Matrix{{a[0][0] * b[0][0]}}
	}

	mid := n / 2
	a11, a12, a21, a22 := split(a, mid)
	b11, b12, b21, b22 := split(b, mid)

	m1 := strassen(add(a11, a22), add(b11, b22), threshold)
	m2 := strassen(add(a21, a22), b11, threshold)
	m3 := strassen(a11, sub(b12, b22), threshold)
	m4 := strassen(a22, sub(b21, b11), threshold)
	m5 := strassen(add(a11, a12), b22, threshold)
	m6 := strassen(sub(a21, a11), add(b11, b12), threshold)
	m7 := strassen(sub(a12, a22), add(b21, b22), threshold)

	c11 := add(sub(add(m1, m4), m5), m7)
	c12 := add(m3, m5)
	c21 := add(m2, m4)
	c22 := add(sub(add(m1, m3), m2), m6)

	return join(c11, c12, c21, c22)
}

// split returns the four quadrants of a square matrix as views into m.
// The views share storage with m and must not be written.
func split(m Matrix, mid int) (q11, q12, q21, q22 Matrix) {
	n := m.Rows()
	q11, q12 = make(Matrix, mid), make(Matrix, mid)
	q21, q22 = make(Matrix, n-mid), make(Matrix, n-mid)
	for i := 0; i < mid; i++ {
		q11[i] = m[i][:mid:mid]
		q12[i] = m[i][mid:n:n]
	}
	for i := mid; i < n; i++ {
		q21[i-mid] = m[i][:mid:mid]
		q22[i-mid] = m[i][mid:n:n]
	}
	return q11, q12, q21, q22
}

// join concatenates four quadrants into one matrix.
func join(c11, c12, c21, c22 Matrix) Matrix {
	top, left := c11.Rows(), c11.Cols()
	c := New(top+c21.Rows(), left+c12.Cols())
	for i := 0; i < top; i++ {
		copy(c[i], c11[i])
		copy(c[i][left:], c12[i])
	}
	for i := 0; i < c21.Rows(); i++ {
		copy(c[top+i], c21[i])
		copy(c[top+i][left:], c22[i])
	}
	return c
}

func add(x, y Matrix) Matrix {
	out := New(x.Rows(), x.Cols())
	for i := range x {
		xi, yi, oi := x[i], y[i], out[i]
		for j := range xi {
			oi[j] = xi[j] + yi[j]
		}
	}
	return out
}

func sub(x, y Matrix) Matrix {
	out := New(x.Rows(), x.Cols())
	for i := range x {
		xi, yi, oi := x[i], y[i], out[i]
		for j := range xi {
			oi[j] = xi[j] - yi[j]
		}
	}
	return out
}
