package datagen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadName is returned when a dataset file name does not follow the
// expected pattern.
var ErrBadName = errors.New("datagen: unrecognized dataset file name")

const (
	squarePrefix = "square_matrix_"
	rectPrefix   = "rectangular_matrix_"
	txt          = ".txt"
)

// ArrayFileName returns "<kind>_<n>.txt".
func ArrayFileName(kind Kind, n int) string {
	return fmt.Sprintf("%s_%d%s", kind, n, txt)
}

// ParseArrayFileName splits "<kind>_<n>.txt" back into kind and size.
func ParseArrayFileName(name string) (Kind, int, error) {
	base, ok := strings.CutSuffix(name, txt)
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	i := strings.LastIndexByte(base, '_')
	if i <= 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	n, err := strconv.Atoi(base[i+1:])
	if err != nil || n < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	kind, err := ParseKind(base[:i])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return kind, n, nil
}

// Shape is a matrix dimension as it appears in file names.
type Shape struct {
	Rows, Cols int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// ParseShape parses "<rows>x<cols>".
func ParseShape(s string) (Shape, error) {
	r, c, ok := strings.Cut(s, "x")
	if !ok {
		return Shape{}, fmt.Errorf("%w: shape %q", ErrBadName, s)
	}
	rows, err1 := strconv.Atoi(r)
	cols, err2 := strconv.Atoi(c)
	if err1 != nil || err2 != nil || rows < 0 || cols < 0 {
		return Shape{}, fmt.Errorf("%w: shape %q", ErrBadName, s)
	}
	return Shape{Rows: rows, Cols: cols}, nil
}

// PairFile identifies one operand file of a multiplication pair.
type PairFile struct {
	// Square is false for rectangular pairs.
	Square bool
	// Index is 1 for the left operand and 2 for the right.
	Index int
	Shape Shape
}

// Name returns the file name, e.g. "square_matrix_1_10x10.txt".
func (p PairFile) Name() string {
	prefix := rectPrefix
	if p.Square {
		prefix = squarePrefix
	}
	return fmt.Sprintf("%s%d_%s%s", prefix, p.Index, p.Shape, txt)
}

// Partner returns the right operand file that goes with a left operand.
// The partner of an r x c rectangular matrix is c x r.
func (p PairFile) Partner() PairFile {
	q := p
	q.Index = 2
	if !p.Square {
		q.Shape = Shape{Rows: p.Shape.Cols, Cols: p.Shape.Rows}
	}
	return q
}

// SquarePair returns the two operand files for an n x n pair.
func SquarePair(n int) (PairFile, PairFile) {
	left := PairFile{Square: true, Index: 1, Shape: Shape{Rows: n, Cols: n}}
	return left, left.Partner()
}

// RectangularPair returns n x (n+20) and (n+20) x n operand files.
func RectangularPair(n int) (PairFile, PairFile) {
	left := PairFile{Index: 1, Shape: Shape{Rows: n, Cols: n + RectangularExtra}}
	return left, left.Partner()
}

// ParsePairFileName parses a square or rectangular operand file name.
func ParsePairFileName(name string) (PairFile, error) {
	base, ok := strings.CutSuffix(name, txt)
	if !ok {
		return PairFile{}, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	var p PairFile
	switch {
	case strings.HasPrefix(base, squarePrefix):
		p.Square = true
		base = strings.TrimPrefix(base, squarePrefix)
	case strings.HasPrefix(base, rectPrefix):
		base = strings.TrimPrefix(base, rectPrefix)
	default:
		return PairFile{}, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	idx, shape, ok := strings.Cut(base, "_")
	if !ok || (idx != "1" && idx != "2") {
		return PairFile{}, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	p.Index = int(idx[0] - '0')

	s, err := ParseShape(shape)
	if err != nil {
		return PairFile{}, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if p.Square && s.Rows != s.Cols {
		return PairFile{}, fmt.Errorf("%w: %q is not square", ErrBadName, name)
	}
	// Timing files key on the left shape alone, so an n x n rectangular
	// pair would collide with the square pair of the same size.
	if !p.Square && s.Rows == s.Cols {
		return PairFile{}, fmt.Errorf("%w: %q has a square shape", ErrBadName, name)
	}
	p.Shape = s
	return p, nil
}
