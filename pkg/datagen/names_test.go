package datagen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunmann/algobench/pkg/datagen"
)

func TestArrayFileName(t *testing.T) {
	assert.Equal(t, "partially_ordered_1000.txt", datagen.ArrayFileName(datagen.PartiallyOrdered, 1000))

	kind, n, err := datagen.ParseArrayFileName("semi_ordered_100.txt")
	require.NoError(t, err)
	assert.Equal(t, datagen.SemiOrdered, kind)
	assert.Equal(t, 100, n)

	for _, bad := range []string{"semi_ordered_100", "ordered_100.txt", "random_x.txt", "_10.txt", "random.txt"} {
		_, _, err := datagen.ParseArrayFileName(bad)
		assert.ErrorIs(t, err, datagen.ErrBadName, bad)
	}
}

func TestPairNames(t *testing.T) {
	s1, s2 := datagen.SquarePair(10)
	assert.Equal(t, "square_matrix_1_10x10.txt", s1.Name())
	assert.Equal(t, "square_matrix_2_10x10.txt", s2.Name())

	r1, r2 := datagen.RectangularPair(10)
	assert.Equal(t, "rectangular_matrix_1_10x30.txt", r1.Name())
	assert.Equal(t, "rectangular_matrix_2_30x10.txt", r2.Name())
}

func TestParsePairFileName(t *testing.T) {
	p, err := datagen.ParsePairFileName("rectangular_matrix_1_100x120.txt")
	require.NoError(t, err)
	assert.False(t, p.Square)
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, datagen.Shape{Rows: 100, Cols: 120}, p.Shape)
	assert.Equal(t, "rectangular_matrix_2_120x100.txt", p.Partner().Name())

	p, err = datagen.ParsePairFileName("square_matrix_2_8x8.txt")
	require.NoError(t, err)
	assert.True(t, p.Square)
	assert.Equal(t, 2, p.Index)

	for _, bad := range []string{
		"square_matrix_1_8x9.txt",
		"square_matrix_3_8x8.txt",
		"rectangular_matrix_1_8.txt",
		"rectangular_matrix_1_8x8.txt",
		"matrix_1_8x8.txt",
		"square_matrix_1_8x8.csv",
	} {
		_, err := datagen.ParsePairFileName(bad)
		assert.ErrorIs(t, err, datagen.ErrBadName, bad)
	}
}

func TestParseShape(t *testing.T) {
	s, err := datagen.ParseShape("3x5")
	require.NoError(t, err)
	assert.Equal(t, "3x5", s.String())

	_, err = datagen.ParseShape("3by5")
	assert.ErrorIs(t, err, datagen.ErrBadName)
}
