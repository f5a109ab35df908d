package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath string // rule file or directory of .hcl files
	Dir      string // project root the rules operate under

	LogFormat string
	LogLevel  string

	Targets []string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = []string{"all"}
	}
	return &cfg, nil
}
