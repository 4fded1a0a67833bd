package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type seedsFile struct {
	Seeds []Seed `yaml:"seeds"`
}

// OverlaySeeds replaces the seed list with the contents of seedsPath when
// that file exists, so scan targets can be managed separately from the rest
// of the config. A missing file is not an error.
func OverlaySeeds(cfg *Config, seedsPath string) error {
	b, err := os.ReadFile(seedsPath)
	if err != nil {
		return nil
	}

	var sf seedsFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Seeds) > 0 {
		cfg.Scan.Seeds = sf.Seeds
	}
	return nil
}
