package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGenerations   = 11
	DefaultEigenDir      = "eigenCSV"
	DefaultMatrixDir     = "exportedMatrices"
	DefaultGraphDir      = "graphs"
	DefaultHistogramBins = 100

	// MaxGenerations bounds the dense build: generation 14 is 16384x16384
	// and the family keeps four such matrices per generation.
	MaxGenerations = 14
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Generations    int          `yaml:"generations"`
	Output         OutputConfig `yaml:"output"`
	VerifySymmetry bool         `yaml:"verify_symmetry"`
	CrossCheck     bool         `yaml:"cross_check"`
	AbortOnError   bool         `yaml:"abort_on_error"`
	HistogramBins  int          `yaml:"histogram_bins"`
}

type OutputConfig struct {
	EigenDir  string `yaml:"eigen_dir"`
	MatrixDir string `yaml:"matrix_dir"`
	GraphDir  string `yaml:"graph_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Generations: DefaultGenerations,
		Output: OutputConfig{
			EigenDir:  DefaultEigenDir,
			MatrixDir: DefaultMatrixDir,
			GraphDir:  DefaultGraphDir,
		},
		VerifySymmetry: true,
		HistogramBins:  DefaultHistogramBins,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Generations < 1 || c.Generations > MaxGenerations {
		return fmt.Errorf("%w: generations must be in [1,%d], got %d", ErrInvalidConfig, MaxGenerations, c.Generations)
	}
	if c.Output.EigenDir == "" {
		return fmt.Errorf("%w: eigen_dir is empty", ErrInvalidConfig)
	}
	if c.Output.MatrixDir == "" {
		return fmt.Errorf("%w: matrix_dir is empty", ErrInvalidConfig)
	}
	if c.HistogramBins < 1 {
		return fmt.Errorf("%w: histogram_bins must be positive, got %d", ErrInvalidConfig, c.HistogramBins)
	}
	return nil
}
