// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rig

import (
	"github.com/gazed/vu/math/lin"
)

// Transform is a location and orientation relative to an optional parent.
// The zero rotation is not valid, use NewTransform or Child.
type Transform struct {
	At     lin.V3     // Local location.
	Rot    lin.Q      // Local orientation.
	parent *Transform // nil for a root transform.
}

// NewTransform returns a root transform at the origin with no rotation.
func NewTransform() *Transform {
	return &Transform{Rot: lin.Q{X: 0, Y: 0, Z: 0, W: 1}}
}

// Child creates a transform attached to t.
func (t *Transform) Child() *Transform {
	c := NewTransform()
	c.parent = t
	return c
}

// Parent is nil for root transforms.
func (t *Transform) Parent() *Transform { return t.parent }

// SetAt moves the transform to the given local location.
func (t *Transform) SetAt(x, y, z float64) *Transform {
	t.At.X, t.At.Y, t.At.Z = x, y, z
	return t
}

// Move adds the given amounts to the local location.
func (t *Transform) Move(dx, dy, dz float64) {
	t.At.X += dx
	t.At.Y += dy
	t.At.Z += dz
}

// WorldRot returns the orientation of t in world space.
func (t *Transform) WorldRot() *lin.Q {
	rot := &lin.Q{X: t.Rot.X, Y: t.Rot.Y, Z: t.Rot.Z, W: t.Rot.W}
	for p := t.parent; p != nil; p = p.parent {
		rot = new(lin.Q).Mult(rot, &p.Rot) // child, then parent.
	}
	return rot
}

// WorldAt returns the location of t in world space.
func (t *Transform) WorldAt() (x, y, z float64) {
	x, y, z = t.At.X, t.At.Y, t.At.Z
	for p := t.parent; p != nil; p = p.parent {
		x, y, z = lin.MultSQ(x, y, z, &p.Rot)
		x, y, z = x+p.At.X, y+p.At.Y, z+p.At.Z
	}
	return x, y, z
}

// Right is the world space unit vector pointing to the right of t.
func (t *Transform) Right() (x, y, z float64) { return lin.MultSQ(1, 0, 0, t.WorldRot()) }

// Forward is the world space unit vector t is looking along.
// Views look down the negative Z axis.
func (t *Transform) Forward() (x, y, z float64) { return lin.MultSQ(0, 0, -1, t.WorldRot()) }

// Up is the world space unit vector above t.
func (t *Transform) Up() (x, y, z float64) { return lin.MultSQ(0, 1, 0, t.WorldRot()) }
