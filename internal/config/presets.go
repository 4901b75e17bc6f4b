package config

var Presets = map[string]*Config{
	"tiny": {
		Generations:    2,
		Output:         OutputConfig{EigenDir: DefaultEigenDir, MatrixDir: DefaultMatrixDir, GraphDir: DefaultGraphDir},
		VerifySymmetry: true,
		CrossCheck:     true,
		HistogramBins:  10,
	},
	"small": {
		Generations:    6,
		Output:         OutputConfig{EigenDir: DefaultEigenDir, MatrixDir: DefaultMatrixDir, GraphDir: DefaultGraphDir},
		VerifySymmetry: true,
		CrossCheck:     true,
		HistogramBins:  50,
	},
	"reference": {
		Generations:    DefaultGenerations,
		Output:         OutputConfig{EigenDir: DefaultEigenDir, MatrixDir: DefaultMatrixDir, GraphDir: DefaultGraphDir},
		VerifySymmetry: true,
		HistogramBins:  DefaultHistogramBins,
	},
	"strict": {
		Generations:    DefaultGenerations,
		Output:         OutputConfig{EigenDir: DefaultEigenDir, MatrixDir: DefaultMatrixDir, GraphDir: DefaultGraphDir},
		VerifySymmetry: true,
		CrossCheck:     true,
		AbortOnError:   true,
		HistogramBins:  DefaultHistogramBins,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
