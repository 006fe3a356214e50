// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
)

// Saver persists any state that needs to be remembered between one
// session and the next. Saver needs to be public and visible for
// the encoding package.
type Saver struct {
	File       string // Save file name.
	X, Y, W, H int    // Window location.
	Pose       Pose   // Last camera pose.
}

// Pose is where the rig was left. It is also what gets copied to the
// clipboard.
type Pose struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	Valid bool    `yaml:"-"` // false until a pose has been saved.
}

// newSaver creates default persistent application state in the user
// configuration directory. The current directory is used if there
// is no configuration directory.
func newSaver() *Saver {
	s := &Saver{}
	dir, err := os.UserConfigDir()
	if err == nil {
		dir = filepath.Join(dir, "flycam")
		if err = os.MkdirAll(dir, 0755); err != nil {
			dir = ""
		}
	} else {
		dir = ""
	}
	s.File = filepath.Join(dir, "flycam.save")
	return s
}

// persistWindow saves the new window location and size, while preserving
// the other information.
func (s *Saver) persistWindow(x, y, w, h int) {
	s.restore()
	s.X, s.Y, s.W, s.H = x, y, w, h
	s.persist()
}

// persistPose saves the camera pose while preserving the other
// information.
func (s *Saver) persistPose(p Pose) {
	s.restore()
	s.Pose = p
	s.Pose.Valid = true
	s.persist()
}

// persist is called to record any user preferences.
func (s *Saver) persist() {
	data := &bytes.Buffer{}
	enc := gob.NewEncoder(data)
	if err := enc.Encode(s); err == nil {
		if err = os.WriteFile(s.File, data.Bytes(), 0644); err != nil {
			warnf("Failed to save state: %s", err)
		}
	} else {
		warnf("Failed to encode state: %s", err)
	}
}

// restore reads persisted information from disk. It handles the case where
// a previous restore file doesn't exist.
func (s *Saver) restore() {
	if bites, err := os.ReadFile(s.File); err == nil {
		dec := gob.NewDecoder(bytes.NewBuffer(bites))
		if err := dec.Decode(s); err != nil {
			warnf("Failed to restore state. %s", err)
		}
	}
}

// reset clears the saved file.
func (s *Saver) reset() {
	os.Remove(s.File)
}
