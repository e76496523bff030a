// Package config loads on-disk YAML overrides for beamform.Config,
// layered underneath its functional-options API: a config file sets
// the baseline, options passed to beamform.NewConfig override it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a beamform.Config override
// file. Fields mirror beamform.Config; DefaultTimeout is a duration
// string (e.g. "500ms") since YAML has no native duration type.
type File struct {
	RegionName     string   `yaml:"region_name"`
	RegionSize     uint64   `yaml:"region_size_bytes"`
	DefaultTimeout string   `yaml:"default_timeout"`
	ShaderDirs     []string `yaml:"shader_dirs"`
	FrameCapacity  uint32   `yaml:"frame_capacity"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// Timeout parses DefaultTimeout, returning zero (wait forever) if the
// field is empty.
func (f File) Timeout() (time.Duration, error) {
	if f.DefaultTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.DefaultTimeout)
	if err != nil {
		return 0, fmt.Errorf("config: default_timeout: %w", err)
	}
	return d, nil
}
