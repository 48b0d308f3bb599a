// Package config assembles the full analysis configuration: per-detector
// defaults with optional YAML overrides so thresholds can be retuned
// without a rebuild.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kidsense/go-rtn/pkg/media"
	"github.com/kidsense/go-rtn/pkg/sound"
	"github.com/kidsense/go-rtn/pkg/vision"
)

// Root is the complete tuning for one analysis pipeline.
type Root struct {
	LogLevel string                `yaml:"log_level"`
	Media    media.Config          `yaml:"media"`
	Sound    sound.Config          `yaml:"sound"`
	Motion   vision.MotionConfig   `yaml:"motion"`
	Behavior vision.BehaviorConfig `yaml:"behavior"`
}

// Default returns the production tuning for every component.
func Default() Root {
	return Root{
		LogLevel: "info",
		Media:    media.DefaultConfig(),
		Sound:    sound.DefaultConfig(),
		Motion:   vision.DefaultMotionConfig(),
		Behavior: vision.DefaultBehaviorConfig(),
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults unchanged; fields absent from the file keep
// their default values.
func Load(path string) (Root, error) {
	root := Default()
	if path == "" {
		return root, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return root, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return root, fmt.Errorf("parse config %s: %w", path, err)
	}
	return root, nil
}
