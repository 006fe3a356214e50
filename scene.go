// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"image/color"
	"math"

	"github.com/gazed/flycam/rig"
	"github.com/gazed/vu/math/lin"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// segment is a coloured line in world space.
type segment struct {
	a, b lin.V3
	clr  color.Color
}

// scene is the wireframe world flown through. It gives the camera
// movement something to be seen against.
type scene struct {
	lines []segment
}

// newScene creates a ground grid with a few boxes scattered on it.
func newScene() *scene {
	s := &scene{}
	size, step := 50.0, 5.0
	for v := -size; v <= size; v += step {
		clr := color.Color(colornames.Darkslategray)
		if v == 0 {
			clr = colornames.Slategray
		}
		s.line(v, 0, -size, v, 0, size, clr)
		s.line(-size, 0, v, size, 0, v, clr)
	}
	s.box(0, 0, -10, 2, colornames.Crimson)
	s.box(15, 0, -25, 4, colornames.Gold)
	s.box(-20, 0, 5, 3, colornames.Mediumseagreen)
	s.box(30, 0, 30, 6, colornames.Steelblue)
	s.box(-35, 0, -40, 8, colornames.Orchid)
	return s
}

// line adds a segment.
func (s *scene) line(x0, y0, z0, x1, y1, z1 float64, clr color.Color) {
	s.lines = append(s.lines, segment{lin.V3{X: x0, Y: y0, Z: z0}, lin.V3{X: x1, Y: y1, Z: z1}, clr})
}

// box adds a cube sitting on the ground centred at x, z.
func (s *scene) box(x, y, z, size float64, clr color.Color) {
	h := size / 2
	for _, ly := range []float64{y, y + size} {
		s.line(x-h, ly, z-h, x+h, ly, z-h, clr)
		s.line(x+h, ly, z-h, x+h, ly, z+h, clr)
		s.line(x+h, ly, z+h, x-h, ly, z+h, clr)
		s.line(x-h, ly, z+h, x-h, ly, z-h, clr)
	}
	for _, c := range [][2]float64{{-h, -h}, {h, -h}, {h, h}, {-h, h}} {
		s.line(x+c[0], y, z+c[1], x+c[0], y+size, z+c[1], clr)
	}
}

// draw renders every visible segment as seen from the eye.
func (s *scene) draw(screen *ebiten.Image, eye *rig.Transform, l *lens) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	l.look(eye)
	for _, seg := range s.lines {
		x0, y0, x1, y1, ok := l.segment(w, h, seg.a, seg.b)
		if !ok {
			continue
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, seg.clr, true)
	}
}

// scene
// ===========================================================================
// lens

// lens is a perspective projection from world space onto the screen.
// Views look down the negative Z axis.
type lens struct {
	fov  float64 // vertical field of view in degrees.
	near float64 // near clip distance.

	ex, ey, ez float64 // eye location set by look.
	inv        lin.Q   // inverse eye rotation set by look.
}

// newLens creates a lens with the given vertical field of view.
func newLens(fov float64) *lens { return &lens{fov: fov, near: 0.1, inv: lin.Q{W: 1}} }

// look positions the lens at the eye. Call before projecting.
func (l *lens) look(eye *rig.Transform) {
	l.ex, l.ey, l.ez = eye.WorldAt()
	l.inv.Inv(eye.WorldRot())
}

// toView moves a world point into eye space.
func (l *lens) toView(p lin.V3) (x, y, z float64) {
	return lin.MultSQ(p.X-l.ex, p.Y-l.ey, p.Z-l.ez, &l.inv)
}

// project maps an eye space point in front of the eye to screen pixels.
func (l *lens) project(w, h int, x, y, z float64) (sx, sy float64) {
	focal := float64(h) / 2 / math.Tan(lin.Rad(l.fov)/2)
	depth := -z
	return float64(w)/2 + x/depth*focal, float64(h)/2 - y/depth*focal
}

// segment projects a world line, clipping it at the near plane.
// Lines entirely behind the near plane are not visible.
func (l *lens) segment(w, h int, a, b lin.V3) (x0, y0, x1, y1 float64, ok bool) {
	ax, ay, az := l.toView(a)
	bx, by, bz := l.toView(b)
	clip := -l.near
	if az > clip && bz > clip {
		return 0, 0, 0, 0, false
	}
	switch {
	case az > clip:
		t := (clip - bz) / (az - bz)
		ax, ay, az = bx+(ax-bx)*t, by+(ay-by)*t, clip
	case bz > clip:
		t := (clip - az) / (bz - az)
		bx, by, bz = ax+(bx-ax)*t, ay+(by-ay)*t, clip
	}
	x0, y0 = l.project(w, h, ax, ay, az)
	x1, y1 = l.project(w, h, bx, by, bz)
	return x0, y0, x1, y1, true
}
