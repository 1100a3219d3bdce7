package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/william251082/lighthouse/audit"
)

// Config is the top-level configuration of the audit tool.
// Fields map 1:1 to the YAML config file; flags override them when set.
type Config struct {
	Audit  AuditConfig  `yaml:"audit"`
	Output OutputConfig `yaml:"output"`
}

// AuditConfig holds settings of the waste computation itself.
type AuditConfig struct {
	// HARPath is the network log to join coverage samples against.
	HARPath string `yaml:"har"`

	// IgnoreThreshold drops resources whose potential savings, in bytes,
	// are at or below this value.
	IgnoreThreshold uint64 `yaml:"ignore_threshold"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	JSON  bool `yaml:"json"`
	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		Audit: AuditConfig{IgnoreThreshold: audit.DefaultIgnoreThreshold},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}
