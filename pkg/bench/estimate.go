package bench

import (
	"github.com/eunmann/algobench/pkg/matmul"
	"github.com/eunmann/algobench/pkg/sorting"
)

const intBytes = 8

// sortWorkingSets is the peak number of n-element slices each strategy
// holds, counting the runner's input copy.
var sortWorkingSets = map[string]uint64{
	sorting.NameBubble:   2,
	sorting.NameMerge:    3,
	sorting.NameQuick:    5,
	sorting.NameBaseline: 2,
}

// EstimateSortBytes approximates peak heap for sorting n ints.
func EstimateSortBytes(alg string, n int) uint64 {
	sets, ok := sortWorkingSets[alg]
	if !ok {
		sets = 3
	}
	return sets * uint64(max(n, 0)) * intBytes
}

// EstimateMatmulBytes approximates peak heap for one product of an r x k
// and k x c operand pair, including padded copies when pad is set.
// Strassen's recursion holds roughly six padded-size matrices of
// temporaries across all levels.
func EstimateMatmulBytes(alg string, r, k, c int, pad bool) uint64 {
	cells := uint64(r*k + k*c + r*c)
	m := uint64(0)
	if pad || alg == matmul.NameStrassen {
		m = uint64(matmul.NextPowerOfTwo(max(r, k, c)))
		cells += 3 * m * m
	}
	switch alg {
	case matmul.NameOptimized:
		cells += uint64(k * c)
	case matmul.NameStrassen:
		cells += 6 * m * m
	}
	return cells * intBytes
}
