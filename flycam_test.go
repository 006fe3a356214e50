// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gazed/flycam/action"
	"github.com/gazed/flycam/rig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFlycam creates a viewer that doesn't touch the platform.
func testFlycam(t *testing.T, cfgPath string) (*flycam, *[]ebiten.CursorModeType) {
	cfg, err := loadConfig(cfgPath)
	require.NoError(t, err)
	fc, err := newFlycam(cfg, cfgPath)
	require.NoError(t, err)
	modes := &[]ebiten.CursorModeType{}
	fc.cursor = func(mode ebiten.CursorModeType) { *modes = append(*modes, mode) }
	t.Cleanup(fc.shutdown)
	return fc, modes
}

// send queues an event and runs the state machine like Update does.
func send(fc *flycam, id int) {
	publish(fc.eventq, id, nil)
	for fc.eventq.Len() > 0 {
		fc.state = fc.state(fc.processEvents())
	}
}

func TestNewFlycamStartsPaused(t *testing.T) {
	fc, _ := testFlycam(t, "")
	assert.False(t, fc.ctrl.Enabled())
	assert.False(t, fc.actions.Enabled())
	assert.Same(t, fc.eye, fc.ctrl.Pitch)
	assert.Same(t, fc.eye, fc.ctrl.Main())
	_, y, _ := fc.body.WorldAt()
	assert.Equal(t, 2.0, y)
	for _, name := range []string{"move", "look", "ascend", "descend"} {
		assert.NotNil(t, fc.actions.Action(name), name)
	}
}

func TestPauseResumeQuit(t *testing.T) {
	fc, modes := testFlycam(t, "")
	fc.state = fc.state(flyGame)
	assert.True(t, fc.ctrl.Enabled())
	assert.True(t, fc.actions.Enabled())

	require.NoError(t, fc.actions.Trigger("move", action.Value{Y: 1}))
	assert.Equal(t, rig.Axis{Y: 1}, fc.ctrl.Signals().Move)

	send(fc, togglePause)
	assert.False(t, fc.ctrl.Enabled())
	assert.False(t, fc.quit)

	// released while paused, so the rig still sees it held.
	require.NoError(t, fc.actions.Trigger("move", action.Value{}))
	assert.Equal(t, rig.Axis{Y: 1}, fc.ctrl.Signals().Move)

	send(fc, resumeFlying)
	assert.True(t, fc.ctrl.Enabled())
	assert.Equal(t, rig.Signals{}, fc.ctrl.Signals(), "resume clears stale input")

	send(fc, togglePause)
	send(fc, togglePause)
	assert.True(t, fc.quit)
	assert.Equal(t, []ebiten.CursorModeType{
		ebiten.CursorModeCaptured, ebiten.CursorModeVisible,
		ebiten.CursorModeCaptured, ebiten.CursorModeVisible,
	}, *modes)
}

func TestFlyingMovesRig(t *testing.T) {
	fc, _ := testFlycam(t, "")
	fc.state = fc.state(flyGame)
	require.NoError(t, fc.actions.Trigger("ascend", action.Value{X: 1}))
	fc.ctrl.Update(0.5)
	_, y, _ := fc.body.WorldAt()
	assert.InDelta(t, 2+0.5*rig.DefaultAscendSpeed, y, 1e-9)
}

func TestResetPose(t *testing.T) {
	fc, _ := testFlycam(t, "")
	fc.restorePose(Pose{X: 4, Y: 5, Z: 6, Yaw: 45, Pitch: 30, Valid: true})
	assert.Equal(t, Pose{X: 4, Y: 5, Z: 6, Yaw: 45, Pitch: 30, Valid: true}, fc.pose())

	send(fc, resetPose)
	assert.Equal(t, Pose{Y: 2, Valid: true}, fc.pose())
	assert.Equal(t, "pose reset", fc.hud.note)
}

func TestRestoreInvalidPose(t *testing.T) {
	fc, _ := testFlycam(t, "")
	fc.restorePose(Pose{X: 9})
	x, _, _ := fc.body.WorldAt()
	assert.Zero(t, x)
}

func TestCopyPoseWithoutClipboard(t *testing.T) {
	fc, _ := testFlycam(t, "")
	send(fc, copyPose)
	assert.Equal(t, "pose not copied", fc.hud.note)
}

func TestReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flycam.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rig:\n  moveSpeed: 3\n"), 0644))
	fc, _ := testFlycam(t, path)
	assert.Equal(t, 3.0, fc.ctrl.MoveSpeed)

	cfg := "rig:\n  moveSpeed: 7\n  lookSpeed: 0.5\n  pitchCamera: false\nwindow:\n  fov: 75\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	send(fc, reloadConfig)
	assert.Equal(t, 7.0, fc.ctrl.MoveSpeed)
	assert.Equal(t, 0.5, fc.ctrl.LookSpeed)
	assert.Nil(t, fc.ctrl.Pitch)
	assert.Equal(t, 75.0, fc.lens.fov)
	assert.Equal(t, "config reloaded", fc.hud.note)

	// a broken file keeps the current settings.
	require.NoError(t, os.WriteFile(path, []byte("rig:\n  moveSpeed: -1\n"), 0644))
	send(fc, reloadConfig)
	assert.Equal(t, 7.0, fc.ctrl.MoveSpeed)
	assert.Equal(t, "config error, see log", fc.hud.note)
}

func TestCustomActionAsset(t *testing.T) {
	dir := t.TempDir()
	asset := filepath.Join(dir, "actions.yaml")
	require.NoError(t, os.WriteFile(asset, []byte(`
maps:
  - name: drone
    actions:
      - {name: move, kind: vector2, bindings: [{path: gamepad/leftStick}]}
      - {name: look, kind: vector2, bindings: [{path: gamepad/rightStick}]}
`), 0644))
	cfgPath := filepath.Join(dir, "flycam.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("actions: "+asset+"\nmap: drone\n"), 0644))
	logs := observeLogs(t)
	fc, _ := testFlycam(t, cfgPath)
	assert.Equal(t, "drone", fc.actions.Name)
	assert.Nil(t, fc.actions.Action("ascend"))

	// the unbound rig signals are reported once each.
	assert.Equal(t, []string{"ascend", "descend"}, missingSignals(fc.actions))
	warned := logs.FilterMessageSnippet("has no").AllUntimed()
	if assert.Len(t, warned, 2) {
		assert.Contains(t, warned[0].Message, `"ascend"`)
		assert.Contains(t, warned[1].Message, `"descend"`)
	}
}

func TestDefaultActionsCoverRig(t *testing.T) {
	logs := observeLogs(t)
	fc, _ := testFlycam(t, "")
	assert.Empty(t, missingSignals(fc.actions))
	assert.Zero(t, logs.FilterMessageSnippet("has no").Len())
}

func TestMissingActionMap(t *testing.T) {
	cfg := defaultConfig()
	cfg.Map = "menu"
	_, err := newFlycam(cfg, "")
	assert.ErrorIs(t, err, action.ErrNoMap)
}

func TestUnknownControl(t *testing.T) {
	dir := t.TempDir()
	asset := filepath.Join(dir, "actions.yaml")
	require.NoError(t, os.WriteFile(asset, []byte(`
maps:
  - name: camera
    actions:
      - {name: ascend, kind: button, bindings: [{path: keyboard/nosuchkey}]}
`), 0644))
	cfg := defaultConfig()
	cfg.Actions = asset
	_, err := newFlycam(cfg, "")
	assert.ErrorIs(t, err, action.ErrBinding)
}
