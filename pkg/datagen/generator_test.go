package datagen_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunmann/algobench/pkg/datagen"
	"github.com/eunmann/algobench/pkg/textio"
)

func inRange(t *testing.T, xs []int) {
	t.Helper()
	for _, v := range xs {
		require.GreaterOrEqual(t, v, 0)
		require.LessOrEqual(t, v, datagen.DefaultMaxValue)
	}
}

func TestArrayKinds(t *testing.T) {
	const n = 1000
	g := datagen.NewGenerator(datagen.DefaultConfig())

	for _, kind := range datagen.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			xs, err := g.Array(kind, n)
			require.NoError(t, err)
			require.Len(t, xs, n)
			inRange(t, xs)

			switch kind {
			case datagen.Sorted:
				assert.True(t, slices.IsSorted(xs))
			case datagen.ReverseOrdered:
				r := slices.Clone(xs)
				slices.Reverse(r)
				assert.True(t, slices.IsSorted(r))
			case datagen.SemiOrdered:
				assert.True(t, slices.IsSorted(xs[:n/2]))
			case datagen.PartiallyOrdered:
				assert.True(t, slices.IsSorted(xs[:3*n/4]))
			}
		})
	}
}

func TestArrayUnknownKind(t *testing.T) {
	g := datagen.NewGenerator(datagen.DefaultConfig())
	_, err := g.Array("shuffled", 10)
	require.ErrorIs(t, err, datagen.ErrUnknownKind)
}

func TestArrayEmptyAndTiny(t *testing.T) {
	g := datagen.NewGenerator(datagen.DefaultConfig())
	for _, n := range []int{0, 1, 3} {
		for _, kind := range datagen.Kinds() {
			xs, err := g.Array(kind, n)
			require.NoError(t, err)
			assert.Len(t, xs, n)
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a := datagen.NewGenerator(datagen.GeneratorConfig{Seed: 7})
	b := datagen.NewGenerator(datagen.GeneratorConfig{Seed: 7})

	xa, err := a.Array(datagen.Random, 100)
	require.NoError(t, err)
	xb, err := b.Array(datagen.Random, 100)
	require.NoError(t, err)
	assert.Equal(t, xa, xb)

	assert.True(t, a.Matrix(5, 7).Equal(b.Matrix(5, 7)))
}

func TestMatrixShape(t *testing.T) {
	g := datagen.NewGenerator(datagen.DefaultConfig())
	m := g.Matrix(3, 23)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 23, m.Cols())
	for _, row := range m {
		inRange(t, row)
	}
}

func TestParseKind(t *testing.T) {
	k, err := datagen.ParseKind("semi_ordered")
	require.NoError(t, err)
	assert.Equal(t, datagen.SemiOrdered, k)

	_, err = datagen.ParseKind("semi")
	assert.ErrorIs(t, err, datagen.ErrUnknownKind)
}

func TestWriteArrays(t *testing.T) {
	dir := t.TempDir()
	g := datagen.NewGenerator(datagen.DefaultConfig())

	paths, err := datagen.WriteArrays(context.Background(), dir, g, []int{10, 100})
	require.NoError(t, err)
	require.Len(t, paths, 10)

	xs, err := textio.LoadArray(filepath.Join(dir, "reverse_ordered_100.txt"))
	require.NoError(t, err)
	assert.Len(t, xs, 100)
	assert.True(t, slices.IsSortedFunc(xs, func(a, b int) int { return b - a }))
}

func TestWriteMatrices(t *testing.T) {
	dir := t.TempDir()
	g := datagen.NewGenerator(datagen.DefaultConfig())

	paths, err := datagen.WriteMatrices(context.Background(), dir, g, []int{4})
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for name, shape := range map[string][2]int{
		"square_matrix_1_4x4.txt":       {4, 4},
		"square_matrix_2_4x4.txt":       {4, 4},
		"rectangular_matrix_1_4x24.txt": {4, 24},
		"rectangular_matrix_2_24x4.txt": {24, 4},
	} {
		m, err := textio.LoadMatrix(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, shape[0], m.Rows(), name)
		assert.Equal(t, shape[1], m.Cols(), name)
	}
}

func TestWriteArraysCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := datagen.WriteArrays(ctx, dir, datagen.NewGenerator(datagen.DefaultConfig()), []int{10})
	require.ErrorIs(t, err, context.Canceled)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}
