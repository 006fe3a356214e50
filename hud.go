// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/gazed/flycam/rig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hud is the text overlay drawn over the scene. It shows where the
// rig is and how to fly it.
type hud struct {
	note      string // short lived message, eg: "pose copied".
	noteTicks int    // ticks left to show the note.
}

// hud messages last about two seconds at the default tick rate.
const noteTicks = 120

// show displays a short message.
func (hd *hud) show(format string, v ...interface{}) {
	hd.note = fmt.Sprintf(format, v...)
	hd.noteTicks = noteTicks
}

// tick ages the current message.
func (hd *hud) tick() {
	if hd.noteTicks > 0 {
		hd.noteTicks--
	}
}

// status is the line describing the rig pose.
func status(ctrl *rig.Controller) string {
	x, y, z := ctrl.Body().WorldAt()
	o := ctrl.Orientation()
	return fmt.Sprintf("at %6.1f %6.1f %6.1f  yaw %6.1f  pitch %5.1f", x, y, z, o.Yaw, o.Pitch)
}

// draw writes the overlay onto the screen.
func (hd *hud) draw(screen *ebiten.Image, ctrl *rig.Controller, paused bool) {
	ebitenutil.DebugPrintAt(screen, status(ctrl), 8, 8)
	help := "WASD move  E/Q up/down  mouse look  F2 copy pose  Esc pause"
	if paused {
		help = "paused: click to fly, Esc to quit"
	}
	h := screen.Bounds().Dy()
	ebitenutil.DebugPrintAt(screen, help, 8, h-24)
	if hd.noteTicks > 0 {
		ebitenutil.DebugPrintAt(screen, hd.note, 8, 24)
	}
}
