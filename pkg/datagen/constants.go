package datagen

// Shared constants for dataset generation and benchmarks.

// DefaultSeed is the default seed for reproducible dataset generation.
const DefaultSeed = 42

// DefaultMaxValue is the inclusive upper bound of generated values.
const DefaultMaxValue = 100

// RectangularExtra is how many more columns the first rectangular operand
// has than rows (and how many more rows the second has than columns).
const RectangularExtra = 20

// Dataset directory names under the data root.
const (
	ArraysDir   = "datasets_a"
	MatricesDir = "matrix_datasets"
)

// ArraySizes are the default array lengths, 10^1 through 10^5.
var ArraySizes = []int{10, 100, 1000, 10000, 100000}

// MatrixSizes are the default matrix dimensions, 10^1 through 10^3.
var MatrixSizes = []int{10, 100, 1000}

// BenchmarkSizes are the sizes Go benchmarks use by default.
var BenchmarkSizes = []int{100, 1000, 10000}

// ScalingSizes are larger sizes, used with ALGOBENCH_LONG_BENCH=1.
var ScalingSizes = []int{10000, 100000, 1000000}
