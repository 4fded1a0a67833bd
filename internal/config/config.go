package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobscout-engine/internal/filter"
)

// Seed is one company board scanned on each run. Name, when set, overrides
// whatever company name the extractor derives from the board.
type Seed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name,omitempty"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Policy filter.Policy `yaml:"policy"`

	Scan struct {
		Seeds      []Seed  `yaml:"seeds"`
		RatePerSec float64 `yaml:"rate_per_sec"`
		Burst      int     `yaml:"burst"`
	} `yaml:"scan"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 8080
	cfg.Policy = filter.DefaultPolicy()
	cfg.Scan.RatePerSec = 2.0
	cfg.Scan.Burst = 4
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	// empty keyword lists would filter everything out or nothing in
	if len(cfg.Policy.Allow) == 0 && len(cfg.Policy.Deny) == 0 {
		cfg.Policy = filter.DefaultPolicy()
	}
	if cfg.Scan.RatePerSec <= 0 {
		cfg.Scan.RatePerSec = 2.0
	}
	if cfg.Scan.Burst <= 0 {
		cfg.Scan.Burst = 4
	}
	return cfg, nil
}
