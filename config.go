// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gazed/flycam/rig"
	"gopkg.in/yaml.v3"
)

// Config is read from a YAML file at start and reread whenever the file
// changes. Fields missing from the file keep their defaults.
type Config struct {
	Rig     RigConfig    `yaml:"rig"`
	Window  WindowConfig `yaml:"window"`
	Log     LogConfig    `yaml:"log"`
	Actions string       `yaml:"actions"` // Action asset file. Empty uses the built in asset.
	Map     string       `yaml:"map"`     // Action map driving the rig.
}

// RigConfig holds the camera rig tunables.
type RigConfig struct {
	MoveSpeed   float64 `yaml:"moveSpeed"`   // units per second.
	LookSpeed   float64 `yaml:"lookSpeed"`   // degrees per unit of look input.
	AscendSpeed float64 `yaml:"ascendSpeed"` // units per second.
	PitchCamera bool    `yaml:"pitchCamera"` // false leaves pitch unapplied.
	Height      float64 `yaml:"height"`      // starting height above the ground.
}

// WindowConfig sets up the initial window. Saved window dimensions
// take precedence.
type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Fov    float64 `yaml:"fov"` // vertical field of view in degrees.
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error.
	Development bool   `yaml:"development"`
}

// defaultConfig is used when there is no configuration file.
func defaultConfig() *Config {
	return &Config{
		Rig: RigConfig{
			MoveSpeed:   rig.DefaultMoveSpeed,
			LookSpeed:   rig.DefaultLookSpeed,
			AscendSpeed: rig.DefaultAscendSpeed,
			PitchCamera: true,
			Height:      2,
		},
		Window: WindowConfig{Title: "Flycam", Width: 800, Height: 600, Fov: 60},
		Log:    LogConfig{Level: "info"},
		Map:    "camera",
	}
}

// loadConfig reads the configuration file over the defaults.
// A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects values the rig or window can't use.
func (c *Config) validate() error {
	switch {
	case c.Rig.MoveSpeed < 0:
		return fmt.Errorf("negative moveSpeed %g", c.Rig.MoveSpeed)
	case c.Rig.LookSpeed < 0:
		return fmt.Errorf("negative lookSpeed %g", c.Rig.LookSpeed)
	case c.Rig.AscendSpeed < 0:
		return fmt.Errorf("negative ascendSpeed %g", c.Rig.AscendSpeed)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("bad window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.Fov <= 0 || c.Window.Fov >= 180:
		return fmt.Errorf("fov %g outside (0, 180)", c.Window.Fov)
	case c.Map == "":
		return errors.New("no action map")
	}
	return nil
}

// tune copies the rig tunables onto a controller.
func (rc RigConfig) tune(ctrl *rig.Controller) {
	ctrl.MoveSpeed = rc.MoveSpeed
	ctrl.LookSpeed = rc.LookSpeed
	ctrl.AscendSpeed = rc.AscendSpeed
}
