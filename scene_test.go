// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"testing"

	"github.com/gazed/flycam/rig"
	"github.com/gazed/vu/math/lin"
	"github.com/stretchr/testify/assert"
)

func TestProjectStraightAhead(t *testing.T) {
	l := newLens(90)
	eye := rig.NewTransform().SetAt(0, 2, 0)
	l.look(eye)

	x0, y0, x1, y1, ok := l.segment(800, 600, lin.V3{X: 0, Y: 2, Z: -10}, lin.V3{X: 0, Y: 2, Z: -20})
	assert.True(t, ok)
	assert.InDelta(t, 400, x0, 1e-9)
	assert.InDelta(t, 300, y0, 1e-9)
	assert.InDelta(t, 400, x1, 1e-9)
	assert.InDelta(t, 300, y1, 1e-9)
}

func TestProjectOffsets(t *testing.T) {
	l := newLens(90) // focal length is half the screen height.
	l.look(rig.NewTransform())

	// right and up of centre at depth 10.
	x, y, _, _, ok := l.segment(800, 600, lin.V3{X: 5, Y: 5, Z: -10}, lin.V3{X: 5, Y: 5, Z: -11})
	assert.True(t, ok)
	assert.InDelta(t, 400+150, x, 1e-9)
	assert.InDelta(t, 300-150, y, 1e-9)
}

func TestSegmentBehindEyeCulled(t *testing.T) {
	l := newLens(60)
	l.look(rig.NewTransform())
	_, _, _, _, ok := l.segment(800, 600, lin.V3{X: 0, Y: 0, Z: 1}, lin.V3{X: 3, Y: 1, Z: 5})
	assert.False(t, ok)
}

func TestSegmentClippedAtNearPlane(t *testing.T) {
	l := newLens(90)
	l.look(rig.NewTransform())

	// straight line along the view axis crossing the eye.
	x0, y0, x1, y1, ok := l.segment(800, 600, lin.V3{X: 0, Y: 0, Z: 5}, lin.V3{X: 0, Y: 0, Z: -5})
	assert.True(t, ok)
	assert.InDelta(t, 400, x0, 1e-9)
	assert.InDelta(t, 300, y0, 1e-9)
	assert.InDelta(t, 400, x1, 1e-9)
	assert.InDelta(t, 300, y1, 1e-9)
}

func TestLensFollowsYaw(t *testing.T) {
	l := newLens(90)
	eye := rig.NewTransform()
	eye.Rot.SetAa(0, 1, 0, lin.Rad(-90)) // turned right, looking down +X.
	l.look(eye)

	x, y, _, _, ok := l.segment(800, 600, lin.V3{X: 10, Y: 0, Z: 0}, lin.V3{X: 20, Y: 0, Z: 0})
	assert.True(t, ok)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)

	// the old forward direction is now behind.
	_, _, _, _, ok = l.segment(800, 600, lin.V3{X: -10, Y: 0, Z: 0}, lin.V3{X: -20, Y: 0, Z: 0})
	assert.False(t, ok)
}

func TestLensFollowsYawAndPitch(t *testing.T) {
	l := newLens(60)
	body := rig.NewTransform().SetAt(1, 2, 3)
	body.Rot.SetAa(0, 1, 0, lin.Rad(-37))
	eye := body.Child()
	eye.Rot.SetAa(1, 0, 0, lin.Rad(-20))
	l.look(eye)

	// points along the eye forward land on the screen centre.
	ex, ey, ez := eye.WorldAt()
	fx, fy, fz := eye.Forward()
	a := lin.V3{X: ex + 5*fx, Y: ey + 5*fy, Z: ez + 5*fz}
	b := lin.V3{X: ex + 9*fx, Y: ey + 9*fy, Z: ez + 9*fz}
	x0, y0, x1, y1, ok := l.segment(800, 600, a, b)
	assert.True(t, ok)
	assert.InDelta(t, 400, x0, 1e-6)
	assert.InDelta(t, 300, y0, 1e-6)
	assert.InDelta(t, 400, x1, 1e-6)
	assert.InDelta(t, 300, y1, 1e-6)
}

func TestNewScene(t *testing.T) {
	s := newScene()
	assert.Greater(t, len(s.lines), 5*12)
}
