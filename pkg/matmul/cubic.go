package matmul

import "fmt"

const (
	opNaive     = "Naive"
	opOptimized = "Optimized"
	opStrassen  = "Strassen"
)

// Naive returns a*b using the textbook triple loop: every C[i][j] is the
// sum over k of A[i][k]*B[k][j]. B is walked column-wise.
func Naive(a, b Matrix) (Matrix, error) {
	if err := checkProduct(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opNaive, err)
	}
	return naive(a, b), nil
}

func naive(a, b Matrix) Matrix {
	n, inner, p := a.Rows(), b.Rows(), b.Cols()
	c := New(n, p)
	for i := 0; i < n; i++ {
		ai, ci := a[i], c[i]
		for j := 0; j < p; j++ {
			sum := 0
			for k := 0; k < inner; k++ {
				sum += ai[k] * b[k][j]
			}
			ci[j] = sum
		}
	}
	return c
}

// Optimized returns a*b with the same arithmetic as Naive but transposes B
// first, so the inner loop reads both operands row-wise.
func Optimized(a, b Matrix) (Matrix, error) {
	if err := checkProduct(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opOptimized, err)
	}
	return optimized(a, b), nil
}

func optimized(a, b Matrix) Matrix {
	bt := Transpose(b)
	n, p := a.Rows(), b.Cols()
	c := New(n, p)
	for i := 0; i < n; i++ {
		ai, ci := a[i], c[i]
		for j := 0; j < p; j++ {
			ci[j] = dot(ai, bt[j])
		}
	}
	return c
}

func dot(x, y []int) int {
	sum := 0
	for k := range x {
		sum += x[k] * y[k]
	}
	return sum
}
