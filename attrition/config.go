package attrition

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/attrigo/pkg/errors"
)

// Strategy names accepted by Config.Strategy.
const (
	StrategyBackward = "backward"
	StrategyStepwise = "stepwise"
)

// Config holds every tunable of the pipeline. Build one from DefaultConfig
// and override fields, or read a yaml file with LoadConfig.
type Config struct {
	// VIFThreshold flags predictors as collinear above this value.
	VIFThreshold float64
	// PCutoff is the coefficient significance cutoff.
	PCutoff float64
	// MaxIter bounds the IRLS iterations of every fit.
	MaxIter int
	// Tolerance is the deviance-change convergence tolerance.
	Tolerance float64
	// TrainRatio is the fraction of rows assigned to training.
	TrainRatio float64
	// Seed drives the stratified split; it is the only randomness.
	Seed int64
	// Threshold is the decision threshold on predicted probabilities.
	Threshold float64
	// TopN is the shortlist length.
	TopN int
	// Strategy selects the refinement mode: "backward" or "stepwise".
	Strategy string
}

// DefaultConfig returns the conventional settings.
func DefaultConfig() Config {
	return Config{
		VIFThreshold: 5,
		PCutoff:      0.05,
		MaxIter:      25,
		Tolerance:    1e-8,
		TrainRatio:   0.75,
		Seed:         42,
		Threshold:    0.5,
		TopN:         50,
		Strategy:     StrategyBackward,
	}
}

// Validate rejects configurations no pipeline stage could honor.
func (c Config) Validate() error {
	if c.VIFThreshold <= 1 {
		return errors.NewValueError("Config.Validate", "vif_threshold must be greater than 1")
	}
	if c.PCutoff <= 0 || c.PCutoff >= 1 {
		return errors.NewValueError("Config.Validate", "p_cutoff must be in (0, 1)")
	}
	if c.MaxIter < 1 {
		return errors.NewValueError("Config.Validate", "max_iter must be at least 1")
	}
	if c.Tolerance <= 0 {
		return errors.NewValueError("Config.Validate", "tolerance must be positive")
	}
	if c.TrainRatio <= 0 || c.TrainRatio >= 1 {
		return errors.NewValueError("Config.Validate", "train_ratio must be in (0, 1)")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.NewValueError("Config.Validate", "threshold must be in [0, 1]")
	}
	if c.TopN < 1 {
		return errors.NewValueError("Config.Validate", "top_n must be at least 1")
	}
	if c.Strategy != StrategyBackward && c.Strategy != StrategyStepwise {
		return errors.NewValueError("Config.Validate", "strategy must be \"backward\" or \"stepwise\"")
	}
	return nil
}

// fileConfig mirrors Config with pointer fields so an explicitly configured
// zero (seed: 0, threshold: 0) is distinguishable from an omitted key.
type fileConfig struct {
	VIFThreshold *float64 `yaml:"vif_threshold"`
	PCutoff      *float64 `yaml:"p_cutoff"`
	MaxIter      *int     `yaml:"max_iter"`
	Tolerance    *float64 `yaml:"tolerance"`
	TrainRatio   *float64 `yaml:"train_ratio"`
	Seed         *int64   `yaml:"seed"`
	Threshold    *float64 `yaml:"threshold"`
	TopN         *int     `yaml:"top_n"`
	Strategy     *string  `yaml:"strategy"`
}

func (f fileConfig) apply(cfg *Config) {
	if f.VIFThreshold != nil {
		cfg.VIFThreshold = *f.VIFThreshold
	}
	if f.PCutoff != nil {
		cfg.PCutoff = *f.PCutoff
	}
	if f.MaxIter != nil {
		cfg.MaxIter = *f.MaxIter
	}
	if f.Tolerance != nil {
		cfg.Tolerance = *f.Tolerance
	}
	if f.TrainRatio != nil {
		cfg.TrainRatio = *f.TrainRatio
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.Threshold != nil {
		cfg.Threshold = *f.Threshold
	}
	if f.TopN != nil {
		cfg.TopN = *f.TopN
	}
	if f.Strategy != nil {
		cfg.Strategy = *f.Strategy
	}
}

// LoadConfig reads a yaml config file over the defaults and validates the
// result. Keys absent from the file keep their default; keys present are
// taken as written, zero values included.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	fc.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
