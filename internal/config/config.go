// Package config layers algobench settings from defaults, an optional
// algobench.yaml, a .env file, ALGOBENCH_* environment variables and
// command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/eunmann/algobench/pkg/datagen"
	"github.com/eunmann/algobench/pkg/matmul"
	"github.com/eunmann/algobench/pkg/sorting"
)

// EnvPrefix is prepended to every environment variable, e.g.
// ALGOBENCH_STRASSEN_THRESHOLD.
const EnvPrefix = "ALGOBENCH"

// DefaultConfigName is looked up in the working directory when no
// --config is given.
const DefaultConfigName = "algobench"

// Setting keys. Flags are bound to the same names with '-' for '_'.
const (
	KeyDebug             = "debug"
	KeyHuman             = "human"
	KeyLogFile           = "log_file"
	KeyDataDir           = "data_dir"
	KeyResultsDir        = "results_dir"
	KeySeed              = "seed"
	KeyArraySizes        = "array_sizes"
	KeyMatrixSizes       = "matrix_sizes"
	KeySortStrategies    = "sort_strategies"
	KeyMatmulStrategies  = "matmul_strategies"
	KeyStrassenThreshold = "strassen_threshold"
	KeyPadAll            = "pad_all"
	KeyMemBudget         = "mem_budget"
	KeyMetricsFile       = "metrics_file"
	KeyS3Region          = "s3_region"
	KeyS3Endpoint        = "s3_endpoint"
)

// Config is the decoded settings for one invocation.
type Config struct {
	DataDir           string
	ResultsDir        string
	Seed              int64
	ArraySizes        []int
	MatrixSizes       []int
	SortStrategies    []string
	MatmulStrategies  []string
	StrassenThreshold int
	PadAll            bool
	MetricsFile       string
	S3Region          string
	S3Endpoint        string
}

// ArraysDir is where array datasets live.
func (c Config) ArraysDir() string {
	return filepath.Join(c.DataDir, datagen.ArraysDir)
}

// MatricesDir is where matrix datasets live.
func (c Config) MatricesDir() string {
	return filepath.Join(c.DataDir, datagen.MatricesDir)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyDataDir, ".")
	v.SetDefault(KeyResultsDir, ".")
	v.SetDefault(KeySeed, datagen.DefaultSeed)
	v.SetDefault(KeyArraySizes, itoaAll(datagen.ArraySizes))
	v.SetDefault(KeyMatrixSizes, itoaAll(datagen.MatrixSizes))
	v.SetDefault(KeySortStrategies, sorting.Names())
	v.SetDefault(KeyMatmulStrategies, matmul.Names())
	v.SetDefault(KeyStrassenThreshold, matmul.DefaultThreshold)
	v.SetDefault(KeyPadAll, true)
	return v
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ReadFile reads path into v. With an empty path, algobench.yaml (or any
// extension viper understands) in the working directory is used if present.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// MemBudgetFromFile returns mem_budget only when it comes from the config
// file, so the budget source can be reported accurately.
func MemBudgetFromFile(v *viper.Viper) string {
	if !v.InConfig(KeyMemBudget) {
		return ""
	}
	return v.GetString(KeyMemBudget)
}

// Decode builds a validated Config from v.
func Decode(v *viper.Viper) (Config, error) {
	c := Config{
		DataDir:           v.GetString(KeyDataDir),
		ResultsDir:        v.GetString(KeyResultsDir),
		Seed:              v.GetInt64(KeySeed),
		SortStrategies:    splitList(v.GetStringSlice(KeySortStrategies)),
		MatmulStrategies:  splitList(v.GetStringSlice(KeyMatmulStrategies)),
		StrassenThreshold: v.GetInt(KeyStrassenThreshold),
		PadAll:            v.GetBool(KeyPadAll),
		MetricsFile:       v.GetString(KeyMetricsFile),
		S3Region:          v.GetString(KeyS3Region),
		S3Endpoint:        v.GetString(KeyS3Endpoint),
	}

	var err error
	if c.ArraySizes, err = parseSizes(KeyArraySizes, v.GetStringSlice(KeyArraySizes)); err != nil {
		return Config{}, err
	}
	if c.MatrixSizes, err = parseSizes(KeyMatrixSizes, v.GetStringSlice(KeyMatrixSizes)); err != nil {
		return Config{}, err
	}

	if c.StrassenThreshold < 0 {
		return Config{}, fmt.Errorf("%s: %w: %d", KeyStrassenThreshold, matmul.ErrInvalidThreshold, c.StrassenThreshold)
	}
	for _, name := range c.SortStrategies {
		if _, err := sorting.Lookup(name); err != nil {
			return Config{}, fmt.Errorf("%s: %w", KeySortStrategies, err)
		}
	}
	for _, name := range c.MatmulStrategies {
		if !matmul.Known(name) {
			return Config{}, fmt.Errorf("%s: %w: %q", KeyMatmulStrategies, matmul.ErrUnknownStrategy, name)
		}
	}
	return c, nil
}

// splitList accepts both ["a", "b"] and ["a,b"] so env values like
// ALGOBENCH_SORT_STRATEGIES=merge,quick work.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseSizes(key string, in []string) ([]int, error) {
	var sizes []int
	for _, s := range splitList(in) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: invalid size %q", key, s)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func itoaAll(ns []int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = strconv.Itoa(n)
	}
	return out
}
