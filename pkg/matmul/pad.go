package matmul

// NextPowerOfTwo returns the smallest power of two >= n, or 0 for n <= 0.
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Pad zero-extends a and b to m x m, where m is the smallest power of two
// no smaller than any dimension of either operand. Original values keep
// their positions in the top-left block. If both operands are already m x m
// they are returned unchanged, so Pad is idempotent.
//
// Pad assumes rectangular operands. The product of padded operands carries
// extra zero rows and columns; Trim cuts it back to a.Rows() x b.Cols().
func Pad(a, b Matrix) (Matrix, Matrix) {
	m := NextPowerOfTwo(max(a.Rows(), a.Cols(), b.Rows(), b.Cols()))
	if isSquare(a, m) && isSquare(b, m) {
		return a, b
	}
	return embed(a, m), embed(b, m)
}

func isSquare(x Matrix, n int) bool {
	return x.Rows() == n && x.Cols() == n
}

func embed(x Matrix, m int) Matrix {
	out := New(m, m)
	for i, row := range x {
		copy(out[i], row)
	}
	return out
}

// Trim returns the top-left rows x cols block of c. The result shares
// storage with c. c is returned as is when it already has that shape.
func Trim(c Matrix, rows, cols int) Matrix {
	if c.Rows() == rows && c.Cols() == cols {
		return c
	}
	rows = min(rows, c.Rows())
	cols = min(cols, c.Cols())
	out := make(Matrix, rows)
	for i := 0; i < rows; i++ {
		out[i] = c[i][:cols:cols]
	}
	return out
}
