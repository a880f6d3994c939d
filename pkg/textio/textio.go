// Package textio reads and writes the flat whitespace-delimited text files
// used for datasets and results.
//
// An array file is a single line of space-separated integers ending in a
// newline. A matrix file has one row per line with the same encoding.
// Readers are lenient about whitespace and trailing blank lines but reject
// anything that is not an integer and matrices with ragged rows.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eunmann/algobench/pkg/fileutil"
	"github.com/eunmann/algobench/pkg/matmul"
)

// ErrMalformed is returned when a file does not hold the expected integers.
var ErrMalformed = errors.New("textio: malformed input")

// maxLineBytes bounds a single matrix row. A 10^5-column row of three-digit
// values is well under this.
const maxLineBytes = 16 << 20

// WriteArray writes xs as one space-separated line.
func WriteArray(w io.Writer, xs []int) error {
	buf := make([]byte, 0, 4*len(xs)+1)
	buf = appendRow(buf, xs)
	_, err := w.Write(buf)
	return err
}

// ReadArray reads every integer in r, in order.
func ReadArray(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	sc.Split(bufio.ScanWords)

	var xs []int
	for sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %q is not an integer", ErrMalformed, len(xs)+1, sc.Text())
		}
		xs = append(xs, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read array: %w", err)
	}
	if xs == nil {
		xs = []int{}
	}
	return xs, nil
}

// WriteMatrix writes one row per line.
func WriteMatrix(w io.Writer, m matmul.Matrix) error {
	var buf []byte
	for _, row := range m {
		buf = appendRow(buf[:0], row)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// ReadMatrix reads one row per non-blank line. All rows must have the
// same number of columns.
func ReadMatrix(r io.Reader) (matmul.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	m := matmul.Matrix{}
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(m) > 0 && len(fields) != len(m[0]) {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrMalformed, line, len(fields), len(m[0]))
		}
		row := make([]int, len(fields))
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q is not an integer", ErrMalformed, line, j+1, f)
			}
			row[j] = v
		}
		m = append(m, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}
	return m, nil
}

// SaveArray atomically writes xs to path, creating parent directories.
func SaveArray(path string, xs []int) error {
	return fileutil.WriteFile(path, func(w io.Writer) error {
		return WriteArray(w, xs)
	})
}

// LoadArray reads an array file.
func LoadArray(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open array: %w", err)
	}
	defer f.Close()

	xs, err := ReadArray(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return xs, nil
}

// SaveMatrix atomically writes m to path, creating parent directories.
func SaveMatrix(path string, m matmul.Matrix) error {
	return fileutil.WriteFile(path, func(w io.Writer) error {
		return WriteMatrix(w, m)
	})
}

// LoadMatrix reads a matrix file.
func LoadMatrix(path string) (matmul.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix: %w", err)
	}
	defer f.Close()

	m, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func appendRow(buf []byte, row []int) []byte {
	for i, v := range row {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return append(buf, '\n')
}
