package matmul

import "errors"

var (
	// ErrDimensionMismatch indicates operands that cannot be multiplied:
	// a.Cols() != b.Rows(), or a matrix whose rows differ in length.
	ErrDimensionMismatch = errors.New("matmul: dimension mismatch")
	// ErrUnsupportedShape indicates Strassen operands that are not square
	// matrices of one dimension, or a dimension that cannot be halved evenly
	// until it reaches the threshold. Pad fixes both.
	ErrUnsupportedShape = errors.New("matmul: unsupported shape")
	// ErrInvalidThreshold indicates a negative Strassen threshold.
	ErrInvalidThreshold = errors.New("matmul: invalid threshold")
	// ErrUnknownStrategy indicates a strategy name outside Names().
	ErrUnknownStrategy = errors.New("matmul: unknown strategy")
)
