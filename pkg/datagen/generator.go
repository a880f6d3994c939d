// Package datagen generates the synthetic array and matrix datasets the
// benchmark driver runs against.
package datagen

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/eunmann/algobench/pkg/matmul"
)

// ErrUnknownKind is returned for an array kind that is not generated.
var ErrUnknownKind = errors.New("datagen: unknown array kind")

// Kind names an array ordering.
type Kind string

const (
	// Random values, no ordering.
	Random Kind = "random"
	// SemiOrdered has its first half sorted.
	SemiOrdered Kind = "semi_ordered"
	// PartiallyOrdered has its first three quarters sorted.
	PartiallyOrdered Kind = "partially_ordered"
	// ReverseOrdered is sorted descending.
	ReverseOrdered Kind = "reverse_ordered"
	// Sorted is sorted ascending.
	Sorted Kind = "sorted"
)

var kinds = []Kind{Random, SemiOrdered, PartiallyOrdered, ReverseOrdered, Sorted}

// Kinds returns every array kind in generation order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if slices.Contains(kinds, k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// GeneratorConfig configures synthetic data generation.
type GeneratorConfig struct {
	// Seed for reproducible generation. 0 = use DefaultSeed.
	Seed int64
	// MaxValue is the inclusive upper bound of values. 0 = DefaultMaxValue.
	MaxValue int
}

// DefaultConfig returns the configuration the dataset files are built with.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{Seed: DefaultSeed, MaxValue: DefaultMaxValue}
}

// Generator produces arrays and matrices of uniform values in [0, MaxValue].
// Not safe for concurrent use.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// NewGenerator creates a new data generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	if cfg.MaxValue <= 0 {
		cfg.MaxValue = DefaultMaxValue
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Array returns n values ordered according to kind.
func (g *Generator) Array(kind Kind, n int) ([]int, error) {
	xs := g.values(n)
	switch kind {
	case Random:
	case SemiOrdered:
		slices.Sort(xs[:n/2])
	case PartiallyOrdered:
		slices.Sort(xs[:3*n/4])
	case ReverseOrdered:
		slices.Sort(xs)
		slices.Reverse(xs)
	case Sorted:
		slices.Sort(xs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return xs, nil
}

// Matrix returns a rows x cols matrix of random values.
func (g *Generator) Matrix(rows, cols int) matmul.Matrix {
	m := matmul.New(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = g.rng.Intn(g.cfg.MaxValue + 1)
		}
	}
	return m
}

func (g *Generator) values(n int) []int {
	xs := make([]int, max(n, 0))
	for i := range xs {
		xs[i] = g.rng.Intn(g.cfg.MaxValue + 1)
	}
	return xs
}
