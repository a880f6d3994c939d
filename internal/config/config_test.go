package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunmann/algobench/pkg/matmul"
	"github.com/eunmann/algobench/pkg/sorting"
)

func TestDefaults(t *testing.T) {
	c, err := Decode(New())
	require.NoError(t, err)

	assert.Equal(t, ".", c.DataDir)
	assert.Equal(t, ".", c.ResultsDir)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, []int{10, 100, 1000, 10000, 100000}, c.ArraySizes)
	assert.Equal(t, []int{10, 100, 1000}, c.MatrixSizes)
	assert.Equal(t, sorting.Names(), c.SortStrategies)
	assert.Equal(t, matmul.Names(), c.MatmulStrategies)
	assert.Equal(t, matmul.DefaultThreshold, c.StrassenThreshold)
	assert.True(t, c.PadAll)
	assert.Equal(t, filepath.Join(".", "datasets_a"), c.ArraysDir())
	assert.Equal(t, filepath.Join(".", "matrix_datasets"), c.MatricesDir())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ALGOBENCH_STRASSEN_THRESHOLD", "16")
	t.Setenv("ALGOBENCH_SORT_STRATEGIES", "merge,quick")
	t.Setenv("ALGOBENCH_ARRAY_SIZES", "5 50")
	t.Setenv("ALGOBENCH_PAD_ALL", "false")

	c, err := Decode(New())
	require.NoError(t, err)
	assert.Equal(t, 16, c.StrassenThreshold)
	assert.Equal(t, []string{"merge", "quick"}, c.SortStrategies)
	assert.Equal(t, []int{5, 50}, c.ArraySizes)
	assert.False(t, c.PadAll)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
results_dir: out
strassen_threshold: 32
matrix_sizes: [4, 8]
matmul_strategies: [naive, strassen]
mem_budget: 1GiB
`), 0o644))

	v := New()
	require.NoError(t, ReadFile(v, path))
	c, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "out", c.ResultsDir)
	assert.Equal(t, 32, c.StrassenThreshold)
	assert.Equal(t, []int{4, 8}, c.MatrixSizes)
	assert.Equal(t, []string{"naive", "strassen"}, c.MatmulStrategies)
	assert.Equal(t, "1GiB", MemBudgetFromFile(v))
}

func TestEnvBeatsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strassen_threshold: 32\n"), 0o644))
	t.Setenv("ALGOBENCH_STRASSEN_THRESHOLD", "8")

	v := New()
	require.NoError(t, ReadFile(v, path))
	c, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, 8, c.StrassenThreshold)
}

func TestReadFileMissing(t *testing.T) {
	err := ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestReadFileDefaultAbsent(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, ReadFile(New(), ""))
}

func TestMemBudgetFromFileIgnoresEnv(t *testing.T) {
	t.Setenv("ALGOBENCH_MEM_BUDGET", "2GiB")
	assert.Empty(t, MemBudgetFromFile(New()))
}

func TestDecodeValidation(t *testing.T) {
	tests := []struct {
		key   string
		value any
		want  error
	}{
		{KeyStrassenThreshold, -1, matmul.ErrInvalidThreshold},
		{KeySortStrategies, []string{"sorted_builtin"}, sorting.ErrUnknownStrategy},
		{KeyMatmulStrategies, []string{"traditional"}, matmul.ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.value)
			_, err := Decode(v)
			require.ErrorIs(t, err, tt.want)
		})
	}

	v := New()
	v.Set(KeyArraySizes, []string{"10", "ten"})
	_, err := Decode(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ten"`)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALGOBENCH_SEED=7\n"), 0o644))
	t.Setenv("ALGOBENCH_SEED", "")
	os.Unsetenv("ALGOBENCH_SEED")

	require.NoError(t, LoadDotEnv(path))
	c, err := Decode(New())
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.Seed)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "", "c"}))
	assert.Nil(t, splitList(nil))
}
