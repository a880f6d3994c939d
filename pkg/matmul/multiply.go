package matmul

import (
	"fmt"
	"slices"
)

// Strategy names.
const (
	NameNaive     = "naive"
	NameOptimized = "optimized"
	NameStrassen  = "strassen"
)

var names = []string{NameNaive, NameOptimized, NameStrassen}

// Names returns the strategy names accepted by Multiply.
func Names() []string {
	return slices.Clone(names)
}

// Known reports whether name is a strategy accepted by Multiply.
func Known(name string) bool {
	return slices.Contains(names, name)
}

type options struct {
	threshold int
	pad       *bool
}

// Option configures Multiply.
type Option func(*options)

// WithThreshold sets the Strassen base-case dimension. Default
// DefaultThreshold.
func WithThreshold(n int) Option {
	return func(o *options) { o.threshold = n }
}

// WithPadding controls whether operands are padded to a power-of-two square
// before multiplying and the product trimmed afterwards. Padding is on by
// default for strassen and off for the cubic strategies.
func WithPadding(enabled bool) Option {
	return func(o *options) { o.pad = &enabled }
}

// Multiply returns a*b computed by the named strategy. The product always
// has shape a.Rows() x b.Cols(), whether or not padding was applied.
func Multiply(name string, a, b Matrix, opts ...Option) (Matrix, error) {
	if !Known(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	o := options{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	pad := name == NameStrassen
	if o.pad != nil {
		pad = *o.pad
	}

	if err := checkProduct(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	rows, cols := a.Rows(), b.Cols()
	if pad {
		a, b = Pad(a, b)
	}

	var (
		c   Matrix
		err error
	)
	switch name {
	case NameNaive:
		c, err = Naive(a, b)
	case NameOptimized:
		c, err = Optimized(a, b)
	case NameStrassen:
		c, err = Strassen(a, b, o.threshold)
	}
	if err != nil {
		return nil, err
	}
	return Trim(c, rows, cols), nil
}
