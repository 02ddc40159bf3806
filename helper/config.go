package helper

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/siherrmann/wsdgraph/model"
)

// LoadEvalConfig reads the evaluation configuration.
// Priority: ENV > YAML file > env-default tags. An empty path reads ENV and defaults only.
func LoadEvalConfig(path string) (*model.EvalConfig, error) {
	var cfg model.EvalConfig

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, NewError("stat config file", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, NewError(fmt.Sprintf("read config %s", path), err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, NewError("read config env", err)
	}

	if err := ValidateEvalConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateEvalConfig rejects configurations the harness cannot run with.
func ValidateEvalConfig(cfg *model.EvalConfig) error {
	if cfg.LinkType == "" {
		return NewError("validate config", fmt.Errorf("link_type must be set"))
	}
	if cfg.MaxDistance < 1 {
		return NewError("validate config", fmt.Errorf("max_distance must be positive, got %d", cfg.MaxDistance))
	}
	if cfg.SampleSize < 0 {
		return NewError("validate config", fmt.Errorf("sample_size must not be negative, got %d", cfg.SampleSize))
	}
	if cfg.Workers < 1 {
		return NewError("validate config", fmt.Errorf("workers must be at least 1, got %d", cfg.Workers))
	}
	if cfg.NeighborCacheSize < 0 {
		return NewError("validate config", fmt.Errorf("neighbor_cache_size must not be negative, got %d", cfg.NeighborCacheSize))
	}
	return nil
}
