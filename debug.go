// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

//go:build debug

package main

// This file/code is only included in debug builds. Eg:
//     go build -tags debug

import (
	"container/list"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// processDebugInput are extra commands to help debug the rig.
// They are not available in the production builds.
func (fc *flycam) processDebugInput(eventq *list.List) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		publish(eventq, resetPose, nil)
	}
}

// drawDebug shows the raw rig input and the frame rate.
func (fc *flycam) drawDebug(screen *ebiten.Image) {
	in := fc.ctrl.Signals()
	lines := fmt.Sprintf("move %5.2f %5.2f\nlook %6.1f %6.1f\nvertical %2.0f\ntps %.0f fps %.0f",
		in.Move.X, in.Move.Y, in.Look.X, in.Look.Y, in.Vertical, ebiten.ActualTPS(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, lines, 8, 48)
}
