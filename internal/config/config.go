package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"kiki/internal/singbox"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "/etc/kiki/config.yaml"

type Config struct {
	SingBox     SingBoxConfig `yaml:"singbox"`
	Merge       MergeConfig   `yaml:"merge"`
	ExecTimeout time.Duration `yaml:"exec_timeout"`
}

type SingBoxConfig struct {
	Binary     string `yaml:"binary"`
	ConfigPath string `yaml:"config_path"`
	Service    string `yaml:"service"`
}

type MergeConfig struct {
	MissingSlot singbox.MissingSlotPolicy `yaml:"missing_slot"` // ignore | append | fail
}

func Default() *Config {
	return &Config{
		SingBox: SingBoxConfig{
			Binary:     "sing-box",
			ConfigPath: "/etc/sing-box/config.json",
			Service:    "sing-box",
		},
		Merge: MergeConfig{
			MissingSlot: singbox.MissingSlotIgnore,
		},
		ExecTimeout: 30 * time.Second,
	}
}

// Load reads the YAML file at path over the defaults.
// An empty path means DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	optional := false
	if path == "" {
		path = DefaultPath
		optional = true
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Merge.MissingSlot == "" {
		c.Merge.MissingSlot = singbox.MissingSlotIgnore
	}
	if !c.Merge.MissingSlot.Valid() {
		return fmt.Errorf("invalid merge.missing_slot %q (want ignore, append or fail)", c.Merge.MissingSlot)
	}
	if c.SingBox.ConfigPath == "" {
		return fmt.Errorf("singbox.config_path must not be empty")
	}
	if c.SingBox.Binary == "" {
		c.SingBox.Binary = "sing-box"
	}
	if c.SingBox.Service == "" {
		c.SingBox.Service = "sing-box"
	}
	if c.ExecTimeout <= 0 {
		c.ExecTimeout = 30 * time.Second
	}
	return nil
}
