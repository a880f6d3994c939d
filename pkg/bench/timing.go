// Package bench times sorting and multiplication strategies over dataset
// files and persists each result and its timing as flat text under a
// results directory:
//
//	<results>/Result_of_<alg>/<dataset>.txt
//	<results>/Result_of_<alg>/Resultado_<dataset>.txtAnalisisTiempo_<n>.txt
//	<results>/Result_of_<alg>/matrix_result_<n>x<n>.txt
//	<results>/Result_of_<alg>/rectangular_matrix_result_<r>x<c>.txt
//	<results>/Result_of_<alg>/ResultadoAnalisisTiempo_<r>x<c>.txt
package bench

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eunmann/algobench/pkg/datagen"
)

// ErrBadTiming is returned when a timing file cannot be parsed.
var ErrBadTiming = errors.New("bench: malformed timing file")

// Family groups strategies that solve the same problem.
type Family string

const (
	FamilySort   Family = "sort"
	FamilyMatmul Family = "matmul"
)

// Timing is one persisted measurement.
type Timing struct {
	Family    Family
	Algorithm string
	// Dataset is the array file name for sorting, or "square" /
	// "rectangular" for multiplication.
	Dataset string
	// Size is the element count ("1000") or the left operand shape ("10x30").
	Size    string
	Seconds float64
}

const (
	resultDirPrefix = "Result_of_"
	timingSuffix    = ".txt"

	sortLinePrefix   = "Tiempo para ordenar el archivo de tamaño "
	matmulLinePrefix = "Tiempo para multiplicar matrices de tamaño "
	lineSuffix       = " segundos"

	sortTimingPrefix   = "Resultado_"
	sortTimingInfix    = "AnalisisTiempo_"
	matmulTimingPrefix = "ResultadoAnalisisTiempo_"

	squareResultPrefix = "matrix_result_"
	rectResultPrefix   = "rectangular_matrix_result_"

	datasetSquare      = "square"
	datasetRectangular = "rectangular"
)

// AlgorithmDir returns <results>/Result_of_<alg>.
func AlgorithmDir(results, alg string) string {
	return filepath.Join(results, resultDirPrefix+alg)
}

// AlgorithmFromDir returns the algorithm name of a Result_of_<alg> dir.
func AlgorithmFromDir(dir string) (string, bool) {
	alg, ok := strings.CutPrefix(filepath.Base(dir), resultDirPrefix)
	return alg, ok && alg != ""
}

// SortOutputPath is where the sorted copy of dataset is written.
func SortOutputPath(results, alg, dataset string) string {
	return filepath.Join(AlgorithmDir(results, alg), dataset)
}

// SortTimingPath is the timing file for one sorting run. The dataset name
// keeps its extension.
func SortTimingPath(results, alg, dataset, size string) string {
	return filepath.Join(AlgorithmDir(results, alg), sortTimingPrefix+dataset+sortTimingInfix+size+timingSuffix)
}

// MatmulOutputPath is where the product of a pair is written.
func MatmulOutputPath(results, alg string, square bool, shape datagen.Shape) string {
	prefix := rectResultPrefix
	if square {
		prefix = squareResultPrefix
	}
	return filepath.Join(AlgorithmDir(results, alg), prefix+shape.String()+timingSuffix)
}

// MatmulTimingPath is the timing file for one multiplication run.
func MatmulTimingPath(results, alg string, shape datagen.Shape) string {
	return filepath.Join(AlgorithmDir(results, alg), matmulTimingPrefix+shape.String()+timingSuffix)
}

// FormatTimingLine renders the single line stored in a timing file.
func FormatTimingLine(family Family, size string, seconds float64) string {
	prefix := sortLinePrefix
	if family == FamilyMatmul {
		prefix = matmulLinePrefix
	}
	return prefix + size + ": " + strconv.FormatFloat(seconds, 'f', -1, 64) + lineSuffix + "\n"
}

// ParseTimingLine parses a line written by FormatTimingLine. Seconds in
// exponent notation are accepted.
func ParseTimingLine(line string) (Family, string, float64, error) {
	line = strings.TrimSpace(line)

	var family Family
	var rest string
	switch {
	case strings.HasPrefix(line, sortLinePrefix):
		family, rest = FamilySort, strings.TrimPrefix(line, sortLinePrefix)
	case strings.HasPrefix(line, matmulLinePrefix):
		family, rest = FamilyMatmul, strings.TrimPrefix(line, matmulLinePrefix)
	default:
		return "", "", 0, fmt.Errorf("%w: unrecognized line %q", ErrBadTiming, line)
	}

	size, secs, ok := strings.Cut(rest, ": ")
	secs, hasSuffix := strings.CutSuffix(secs, lineSuffix)
	if !ok || !hasSuffix || size == "" {
		return "", "", 0, fmt.Errorf("%w: unrecognized line %q", ErrBadTiming, line)
	}
	seconds, err := strconv.ParseFloat(secs, 64)
	if err != nil || seconds < 0 {
		return "", "", 0, fmt.Errorf("%w: bad seconds %q", ErrBadTiming, secs)
	}
	return family, size, seconds, nil
}

// TimingFromPath recovers the dataset identity encoded in a timing file
// name. ok is false for files that are not timing files.
func TimingFromPath(path string) (Timing, bool) {
	alg, ok := AlgorithmFromDir(filepath.Dir(path))
	if !ok {
		return Timing{}, false
	}
	name := filepath.Base(path)

	if size, ok := strings.CutPrefix(name, matmulTimingPrefix); ok {
		size = strings.TrimSuffix(size, timingSuffix)
		shape, err := datagen.ParseShape(size)
		if err != nil {
			return Timing{}, false
		}
		dataset := datasetRectangular
		if shape.Rows == shape.Cols {
			dataset = datasetSquare
		}
		return Timing{Family: FamilyMatmul, Algorithm: alg, Dataset: dataset, Size: size}, true
	}

	if rest, ok := strings.CutPrefix(name, sortTimingPrefix); ok {
		i := strings.LastIndex(rest, sortTimingInfix)
		if i <= 0 {
			return Timing{}, false
		}
		return Timing{
			Family:    FamilySort,
			Algorithm: alg,
			Dataset:   rest[:i],
			Size:      strings.TrimSuffix(rest[i+len(sortTimingInfix):], timingSuffix),
		}, true
	}
	return Timing{}, false
}
