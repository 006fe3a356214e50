// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/gazed/flycam/action"
	"github.com/hajimehoshi/ebiten/v2"
)

// stickDeadzone ignores gamepad stick drift.
const stickDeadzone = 0.2

// Gamepad controls use the standard gamepad layout names.
var (
	padButtons = map[string]ebiten.StandardGamepadButton{
		"buttonSouth":   ebiten.StandardGamepadButtonRightBottom,
		"buttonEast":    ebiten.StandardGamepadButtonRightRight,
		"buttonWest":    ebiten.StandardGamepadButtonRightLeft,
		"buttonNorth":   ebiten.StandardGamepadButtonRightTop,
		"leftShoulder":  ebiten.StandardGamepadButtonFrontTopLeft,
		"rightShoulder": ebiten.StandardGamepadButtonFrontTopRight,
		"leftTrigger":   ebiten.StandardGamepadButtonFrontBottomLeft,
		"rightTrigger":  ebiten.StandardGamepadButtonFrontBottomRight,
		"dpadUp":        ebiten.StandardGamepadButtonLeftTop,
		"dpadDown":      ebiten.StandardGamepadButtonLeftBottom,
		"dpadLeft":      ebiten.StandardGamepadButtonLeftLeft,
		"dpadRight":     ebiten.StandardGamepadButtonLeftRight,
	}
	padSticks = map[string][2]ebiten.StandardGamepadAxis{
		"leftStick":  {ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical},
		"rightStick": {ebiten.StandardGamepadAxisRightStickHorizontal, ebiten.StandardGamepadAxisRightStickVertical},
	}
	mouseButtons = map[string]ebiten.MouseButton{
		"left":   ebiten.MouseButtonLeft,
		"right":  ebiten.MouseButtonRight,
		"middle": ebiten.MouseButtonMiddle,
	}
)

// reader reports the current value of one bound control.
type reader func() action.Value

// bound is an action with its resolved controls.
type bound struct {
	name    string
	kind    action.Kind
	readers []reader
}

// devices polls the keyboard, mouse and first gamepad once a tick and
// reports changed action values to the action map. It is the only place
// that knows about hardware.
type devices struct {
	actions *action.Map
	bound   []*bound
	last    map[string]action.Value // last value sent per action.

	mx, my int     // cursor position at the last poll.
	dx, dy float64 // cursor movement since the last poll.
	mouse  bool    // false until the cursor position is known.

	pads []ebiten.GamepadID
}

// newDevices resolves the bindings of every action in the map.
func newDevices(m *action.Map) (*devices, error) {
	d := &devices{actions: m, last: map[string]action.Value{}}
	for _, a := range m.Actions() {
		b := &bound{name: a.Name, kind: a.Kind}
		for _, binding := range a.Bindings {
			r, err := d.resolve(binding)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", a.Name, err)
			}
			b.readers = append(b.readers, r)
		}
		d.bound = append(d.bound, b)
	}
	return d, nil
}

// resolve turns a binding into a reader.
func (d *devices) resolve(b action.Binding) (reader, error) {
	scale := b.Factor()
	if b.Composite != "" {
		var parts [4]func() bool
		for i, path := range b.Parts() {
			p, err := d.pressed(path)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		return func() action.Value {
			v := dpadValue(parts[0](), parts[1](), parts[2](), parts[3]())
			return action.Value{X: v.X * scale, Y: v.Y * scale}
		}, nil
	}
	dev, ctl := action.Device(b.Path), action.Control(b.Path)
	if dev == "mouse" && ctl == "delta" {
		return func() action.Value { return action.Value{X: d.dx * scale, Y: -d.dy * scale} }, nil
	}
	if axes, ok := padSticks[ctl]; ok && dev == "gamepad" {
		return func() action.Value {
			id, ok := d.pad()
			if !ok {
				return action.Value{}
			}
			x := ebiten.StandardGamepadAxisValue(id, axes[0])
			y := -ebiten.StandardGamepadAxisValue(id, axes[1]) // pad up is negative.
			v := deadzone(x, y)
			return action.Value{X: v.X * scale, Y: v.Y * scale}
		}, nil
	}
	p, err := d.pressed(b.Path)
	if err != nil {
		return nil, err
	}
	return func() action.Value {
		if p() {
			return action.Value{X: scale}
		}
		return action.Value{}
	}, nil
}

// pressed resolves a path to a button.
func (d *devices) pressed(path string) (func() bool, error) {
	dev, ctl := action.Device(path), action.Control(path)
	switch dev {
	case "keyboard":
		key, err := parseKey(ctl)
		if err != nil {
			return nil, err
		}
		return func() bool { return ebiten.IsKeyPressed(key) }, nil
	case "mouse":
		if mb, ok := mouseButtons[ctl]; ok {
			return func() bool { return ebiten.IsMouseButtonPressed(mb) }, nil
		}
	case "gamepad":
		if pb, ok := padButtons[ctl]; ok {
			return func() bool {
				id, ok := d.pad()
				return ok && ebiten.IsStandardGamepadButtonPressed(id, pb)
			}, nil
		}
	}
	return nil, fmt.Errorf("control %q: %w", path, action.ErrBinding)
}

// parseKey accepts ebiten key names in any case, eg: "w", "space",
// "controlLeft".
func parseKey(name string) (ebiten.Key, error) {
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("key %q: %w", name, action.ErrBinding)
	}
	return key, nil
}

// pad returns the first gamepad with a standard layout.
func (d *devices) pad() (ebiten.GamepadID, bool) {
	for _, id := range d.pads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}

// poll samples every control and triggers the actions whose value
// changed since the last poll.
func (d *devices) poll() {
	x, y := ebiten.CursorPosition()
	d.dx, d.dy = 0, 0
	if d.mouse {
		d.dx, d.dy = float64(x-d.mx), float64(y-d.my)
	}
	d.mx, d.my, d.mouse = x, y, true
	d.pads = ebiten.AppendGamepadIDs(d.pads[:0])

	for _, b := range d.bound {
		vals := make([]action.Value, len(b.readers))
		for i, r := range b.readers {
			vals[i] = r()
		}
		v := combine(b.kind, vals)
		if last, ok := d.last[b.name]; ok && last == v {
			continue
		}
		d.last[b.name] = v
		if err := d.actions.Trigger(b.name, v); err != nil {
			warnf("devices: %s", err)
		}
	}
}

// resync forgets what was last sent so held controls are reported again
// on the next poll. Mouse movement restarts from the current position.
func (d *devices) resync() {
	d.last = map[string]action.Value{}
	d.mouse = false
}

// combine picks the value of an action from its controls. Buttons are
// pressed when any control is actuated, vectors use the strongest control.
func combine(kind action.Kind, vals []action.Value) action.Value {
	best, mag := action.Value{}, 0.0
	for _, v := range vals {
		if m := v.X*v.X + v.Y*v.Y; m > mag {
			best, mag = v, m
		}
	}
	if kind == action.Button && mag > 0 {
		return action.Value{X: 1}
	}
	return best
}

// dpadValue combines four buttons into a unit or diagonal vector.
// Diagonals are normalized so they are no faster than a single direction.
func dpadValue(up, down, left, right bool) action.Value {
	var v action.Value
	if up {
		v.Y++
	}
	if down {
		v.Y--
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	if v.X != 0 && v.Y != 0 {
		v.X, v.Y = v.X/math.Sqrt2, v.Y/math.Sqrt2
	}
	return v
}

// deadzone zeroes small stick deflections.
func deadzone(x, y float64) action.Value {
	if math.Hypot(x, y) <= stickDeadzone {
		return action.Value{}
	}
	return action.Value{X: x, Y: y}
}
