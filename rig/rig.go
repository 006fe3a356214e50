// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rig is a free-fly camera controller. It turns resolved input
// signals into per-frame translation and rotation of a transform.
//
// The rig body is yawed about the world vertical axis. An optional pitch
// transform, normally a child of the body holding the camera, is tilted
// about its local horizontal axis. Movement is relative to the main
// camera which is looked up fresh every frame.
//
// A Controller is not safe for concurrent use. Input callbacks and Update
// are expected on the same goroutine.
package rig

import (
	"github.com/gazed/vu/math/lin"
)

// Source is the input layer feeding a Controller. Bind registers handlers
// for a named input and returns a function that removes them. The handlers
// only fire while the source is enabled.
type Source interface {
	Bind(name string, performed, canceled func(x, y float64)) (unbind func())
	Enable()
	Disable()
}

// Default tunables.
const (
	DefaultMoveSpeed   = 10.0 // units per second.
	DefaultLookSpeed   = 0.1  // degrees per unit of look input.
	DefaultAscendSpeed = 5.0  // units per second.

	pitchLimit = 90.0 // degrees.
)

// Orientation is the accumulated view direction in degrees.
type Orientation struct {
	Yaw   float64 // unbounded, positive turns right.
	Pitch float64 // [-90, 90], positive looks down.
}

// Controller moves and turns a rig body from input signals.
type Controller struct {
	MoveSpeed   float64 // Horizontal speed in units per second.
	LookSpeed   float64 // Degrees per unit of look input.
	AscendSpeed float64 // Vertical speed in units per second.

	// Pitch, if set, receives the pitch rotation. Usually a child of
	// the body carrying the camera.
	Pitch *Transform

	// Main resolves the camera whose right and forward vectors drive
	// movement. It is called every Update. The body is used when Main
	// is nil or returns nil.
	Main func() *Transform

	body    *Transform
	src     Source
	in      Signals
	orient  Orientation
	enabled bool
	unbind  []func()
}

// New creates a disabled controller for the given body and binds its
// input handlers to src. Call Enable to start receiving input.
func New(src Source, body *Transform) *Controller {
	c := &Controller{
		MoveSpeed:   DefaultMoveSpeed,
		LookSpeed:   DefaultLookSpeed,
		AscendSpeed: DefaultAscendSpeed,
		body:        body,
		src:         src,
	}
	for _, sig := range []Signal{Move, Look, Ascend, Descend} {
		c.unbind = append(c.unbind, src.Bind(string(sig), c.performed(sig), c.canceled(sig)))
	}
	return c
}

// performed and canceled turn source callbacks into signal events.
func (c *Controller) performed(sig Signal) func(x, y float64) {
	return func(x, y float64) { c.in.Apply(Event{Signal: sig, Phase: Performed, X: x, Y: y}) }
}
func (c *Controller) canceled(sig Signal) func(x, y float64) {
	return func(x, y float64) { c.in.Apply(Event{Signal: sig, Phase: Canceled}) }
}

// Enable starts input delivery. Calling it again has no effect.
func (c *Controller) Enable() {
	if c.enabled || c.src == nil {
		return
	}
	c.src.Enable()
	c.enabled = true
}

// Disable stops input delivery. The current signals are kept as is,
// use ResetInput to clear them.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.src.Disable()
	c.enabled = false
}

// Enabled is true while the controller receives input.
func (c *Controller) Enabled() bool { return c.enabled }

// Close disables the controller and releases its input bindings.
// The controller no longer receives input after Close.
func (c *Controller) Close() {
	c.Disable()
	for _, fn := range c.unbind {
		fn()
	}
	c.unbind = nil
	c.src = nil
}

// ResetInput zeroes the cached signals.
func (c *Controller) ResetInput() { c.in.Reset() }

// Signals returns the cached input state.
func (c *Controller) Signals() Signals { return c.in }

// Orientation returns the accumulated yaw and pitch.
func (c *Controller) Orientation() Orientation { return c.orient }

// Body is the transform moved and yawed by the controller.
func (c *Controller) Body() *Transform { return c.body }

// SetOrientation replaces the accumulated yaw and pitch and applies them
// to the transforms. Pitch is clamped.
func (c *Controller) SetOrientation(o Orientation) {
	c.orient.Yaw = o.Yaw
	c.orient.Pitch = lin.Clamp(o.Pitch, -pitchLimit, pitchLimit)
	c.turn()
}

// Update applies one frame of movement and rotation. The dt is the
// elapsed time in seconds since the previous Update.
func (c *Controller) Update(dt float64) {
	c.move(dt)
	c.orient.Yaw += c.in.Look.X * c.LookSpeed
	c.orient.Pitch -= c.in.Look.Y * c.LookSpeed
	c.orient.Pitch = lin.Clamp(c.orient.Pitch, -pitchLimit, pitchLimit)
	c.turn()
}

// move translates the body relative to the main camera, then vertically
// along the world up axis.
func (c *Controller) move(dt float64) {
	eye := c.body
	if c.Main != nil {
		if main := c.Main(); main != nil {
			eye = main
		}
	}
	rx, ry, rz := eye.Right()
	fx, fy, fz := eye.Forward()
	mx, my := c.in.Move.X, c.in.Move.Y
	run := c.MoveSpeed * dt
	c.body.Move((rx*mx+fx*my)*run, (ry*mx+fy*my)*run, (rz*mx+fz*my)*run)
	c.body.Move(0, c.in.Vertical*c.AscendSpeed*dt, 0)
}

// turn sets the body yaw and the optional pitch transform.
// Positive yaw turns right, which is a negative rotation about Y in a
// right handed world. Likewise positive pitch tilts the view down.
func (c *Controller) turn() {
	c.body.Rot.SetAa(0, 1, 0, lin.Rad(-c.orient.Yaw))
	if c.Pitch != nil {
		c.Pitch.Rot.SetAa(1, 0, 0, lin.Rad(-c.orient.Pitch))
	}
}
