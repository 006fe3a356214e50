// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package action

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Composite kinds.
const dpad = "dpad" // four buttons combined into a 2D vector.

// Binding connects a device control to an action. Either Path is set,
// eg: "keyboard/e", "mouse/delta", "gamepad/leftStick", or Composite is
// set along with its part paths.
type Binding struct {
	Path      string  `yaml:"path,omitempty"`
	Composite string  `yaml:"composite,omitempty"`
	Up        string  `yaml:"up,omitempty"`
	Down      string  `yaml:"down,omitempty"`
	Left      string  `yaml:"left,omitempty"`
	Right     string  `yaml:"right,omitempty"`
	Scale     float64 `yaml:"scale,omitempty"` // 0 means 1.
}

// Device is the part of a path before the first slash.
func Device(path string) string {
	dev, _, _ := strings.Cut(path, "/")
	return dev
}

// Control is the part of a path after the first slash.
func Control(path string) string {
	_, ctl, _ := strings.Cut(path, "/")
	return ctl
}

// Parts returns the dpad part paths in up, down, left, right order.
func (b Binding) Parts() []string { return []string{b.Up, b.Down, b.Left, b.Right} }

// Factor is the scale applied to the bound value.
func (b Binding) Factor() float64 {
	if b.Scale == 0 {
		return 1
	}
	return b.Scale
}

// validate checks a binding against the kind of its action.
func (b Binding) validate(kind Kind) error {
	switch {
	case b.Path != "" && b.Composite != "":
		return fmt.Errorf("both path %q and composite %q: %w", b.Path, b.Composite, ErrBinding)
	case b.Path != "":
		return validPath(b.Path)
	case b.Composite == dpad:
		if kind != Vector2 {
			return fmt.Errorf("dpad on %s action: %w", kind, ErrBinding)
		}
		for _, p := range b.Parts() {
			if err := validPath(p); err != nil {
				return fmt.Errorf("dpad part: %w", err)
			}
		}
		return nil
	case b.Composite != "":
		return fmt.Errorf("composite %q: %w", b.Composite, ErrBinding)
	}
	return fmt.Errorf("empty binding: %w", ErrBinding)
}

// validPath requires a "device/control" path.
func validPath(path string) error {
	if Device(path) == "" || Control(path) == "" {
		return fmt.Errorf("path %q: %w", path, ErrBinding)
	}
	return nil
}

// ActionDef describes one action in an asset.
type ActionDef struct {
	Name     string    `yaml:"name"`
	Kind     Kind      `yaml:"kind"`
	Bindings []Binding `yaml:"bindings"`
}

// MapDef describes one action map in an asset.
type MapDef struct {
	Name    string      `yaml:"name"`
	Actions []ActionDef `yaml:"actions"`
}

// Asset is an input action configuration file. It holds any number
// of action maps.
type Asset struct {
	Maps []MapDef `yaml:"maps"`
}

// LoadAsset decodes and validates a YAML action asset.
func LoadAsset(r io.Reader) (*Asset, error) {
	asset := &Asset{}
	if err := yaml.NewDecoder(r).Decode(asset); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode action asset: %w", err)
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	return asset, nil
}

// ReadAsset loads an action asset file.
func ReadAsset(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open action asset: %w", err)
	}
	defer f.Close()
	return LoadAsset(f)
}

// Validate checks names are unique, kinds are known and bindings are
// well formed.
func (as *Asset) Validate() error {
	maps := map[string]bool{}
	for _, md := range as.Maps {
		if md.Name == "" || maps[md.Name] {
			return fmt.Errorf("map %q: %w", md.Name, ErrDuplicate)
		}
		maps[md.Name] = true
		actions := map[string]bool{}
		for _, ad := range md.Actions {
			if ad.Name == "" || actions[ad.Name] {
				return fmt.Errorf("map %q action %q: %w", md.Name, ad.Name, ErrDuplicate)
			}
			actions[ad.Name] = true
			if ad.Kind != Button && ad.Kind != Vector2 {
				return fmt.Errorf("map %q action %q kind %q: %w", md.Name, ad.Name, ad.Kind, ErrKind)
			}
			for _, b := range ad.Bindings {
				if err := b.validate(ad.Kind); err != nil {
					return fmt.Errorf("map %q action %q: %w", md.Name, ad.Name, err)
				}
			}
		}
	}
	return nil
}

// Map builds a new disabled action map from the named definition.
func (as *Asset) Map(name string) (*Map, error) {
	for _, md := range as.Maps {
		if md.Name != name {
			continue
		}
		m := NewMap(md.Name)
		for _, ad := range md.Actions {
			bindings := append([]Binding(nil), ad.Bindings...)
			if err := m.Add(NewAction(ad.Name, ad.Kind, bindings...)); err != nil {
				return nil, err
			}
		}
		return m, nil
	}
	return nil, fmt.Errorf("action map %q: %w", name, ErrNoMap)
}
