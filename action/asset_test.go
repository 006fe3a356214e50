// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package action

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cameraAsset = `
maps:
  - name: camera
    actions:
      - name: move
        kind: vector2
        bindings:
          - composite: dpad
            up: keyboard/w
            down: keyboard/s
            left: keyboard/a
            right: keyboard/d
          - path: gamepad/leftStick
      - name: look
        kind: vector2
        bindings:
          - path: mouse/delta
          - path: gamepad/rightStick
            scale: 8
      - name: ascend
        kind: button
        bindings:
          - path: keyboard/e
`

func TestLoadAsset(t *testing.T) {
	asset, err := LoadAsset(strings.NewReader(cameraAsset))
	require.NoError(t, err)
	require.Len(t, asset.Maps, 1)

	m, err := asset.Map("camera")
	require.NoError(t, err)
	assert.False(t, m.Enabled())
	require.Len(t, m.Actions(), 3)

	move := m.Action("move")
	require.NotNil(t, move)
	assert.Equal(t, Vector2, move.Kind)
	require.Len(t, move.Bindings, 2)
	assert.Equal(t, []string{"keyboard/w", "keyboard/s", "keyboard/a", "keyboard/d"}, move.Bindings[0].Parts())
	assert.Equal(t, 1.0, move.Bindings[1].Factor())
	assert.Equal(t, 8.0, m.Action("look").Bindings[1].Factor())
	assert.Equal(t, Button, m.Action("ascend").Kind)
}

func TestAssetMapsAreIndependent(t *testing.T) {
	asset, err := LoadAsset(strings.NewReader(cameraAsset))
	require.NoError(t, err)
	m1, err := asset.Map("camera")
	require.NoError(t, err)
	m2, err := asset.Map("camera")
	require.NoError(t, err)
	assert.NotSame(t, m1.Action("move"), m2.Action("move"))
}

func TestAssetMissingMap(t *testing.T) {
	asset, err := LoadAsset(strings.NewReader(cameraAsset))
	require.NoError(t, err)
	_, err = asset.Map("menu")
	assert.ErrorIs(t, err, ErrNoMap)
}

func TestEmptyAsset(t *testing.T) {
	asset, err := LoadAsset(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, asset.Maps)
}

func TestAssetValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"bad kind", `
maps:
  - name: m
    actions:
      - name: a
        kind: trigger`, ErrKind},
		{"duplicate action", `
maps:
  - name: m
    actions:
      - {name: a, kind: button}
      - {name: a, kind: button}`, ErrDuplicate},
		{"duplicate map", `
maps:
  - name: m
  - name: m`, ErrDuplicate},
		{"bad path", `
maps:
  - name: m
    actions:
      - name: a
        kind: button
        bindings:
          - path: space`, ErrBinding},
		{"dpad on button", `
maps:
  - name: m
    actions:
      - name: a
        kind: button
        bindings:
          - {composite: dpad, up: keyboard/w, down: keyboard/s, left: keyboard/a, right: keyboard/d}`, ErrBinding},
		{"dpad missing part", `
maps:
  - name: m
    actions:
      - name: a
        kind: vector2
        bindings:
          - {composite: dpad, up: keyboard/w, down: keyboard/s, left: keyboard/a}`, ErrBinding},
		{"unknown composite", `
maps:
  - name: m
    actions:
      - name: a
        kind: vector2
        bindings:
          - composite: axis`, ErrBinding},
		{"empty binding", `
maps:
  - name: m
    actions:
      - name: a
        kind: vector2
        bindings:
          - scale: 2`, ErrBinding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAsset(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAssetDecodeError(t *testing.T) {
	_, err := LoadAsset(strings.NewReader("maps: [1, 2"))
	assert.Error(t, err)
}

func TestReadAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cameraAsset), 0644))
	asset, err := ReadAsset(path)
	require.NoError(t, err)
	assert.Len(t, asset.Maps[0].Actions, 3)

	_, err = ReadAsset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPathParts(t *testing.T) {
	assert.Equal(t, "keyboard", Device("keyboard/space"))
	assert.Equal(t, "space", Control("keyboard/space"))
	assert.Equal(t, "", Control("keyboard"))
}
