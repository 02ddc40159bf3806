package model

// EvalConfig configures distance computation and the evaluation harness.
type EvalConfig struct {
	// Link type the engine is bound to; traversal follows all link types.
	LinkType string `yaml:"link_type" env:"WSD_LINK_TYPE" env-default:"hypernym"`

	// Distance cap for MinDistanceToSet and Distances.
	MaxDistance int `yaml:"max_distance" env:"WSD_MAX_DISTANCE" env-default:"12"`

	// Random subsample size after filtering, 0 keeps every case.
	SampleSize int   `yaml:"sample_size" env:"WSD_SAMPLE_SIZE" env-default:"0"`
	Seed       int64 `yaml:"seed" env:"WSD_SEED" env-default:"0"`

	// Concurrent scoring workers.
	Workers int `yaml:"workers" env:"WSD_WORKERS" env-default:"1"`

	// Per-engine neighbor cache entries, 0 disables memoization.
	NeighborCacheSize int `yaml:"neighbor_cache_size" env:"WSD_NEIGHBOR_CACHE_SIZE" env-default:"0"`
}

// DefaultEvalConfig returns the configuration used by the reference scorers.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		LinkType:          LinkHypernym,
		MaxDistance:       12,
		SampleSize:        0,
		Seed:              0,
		Workers:           1,
		NeighborCacheSize: 0,
	}
}
