// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// errNoClipboard is returned when the platform has no clipboard.
var errNoClipboard = errors.New("no clipboard")

// clipper copies the camera pose to the system clipboard so that
// interesting viewpoints can be pasted into notes or config files.
type clipper struct {
	ok bool // false when the platform has no clipboard.
}

// newClipper prepares the clipboard. Failure is logged and leaves
// copying disabled.
func newClipper() *clipper {
	c := &clipper{}
	if err := clipboard.Init(); err != nil {
		warnf("clipboard unavailable: %s", err)
		return c
	}
	c.ok = true
	return c
}

// poseText renders a pose as YAML.
func poseText(p Pose) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode pose: %w", err)
	}
	return data, nil
}

// copyPose puts the pose on the clipboard. A nil clipper has no clipboard.
func (c *clipper) copyPose(p Pose) error {
	if c == nil || !c.ok {
		return errNoClipboard
	}
	data, err := poseText(p)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
