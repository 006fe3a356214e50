// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package rig

// Signal names the logical inputs consumed by the rig. The names double
// as the action names looked up in the input source.
type Signal string

// Signals read by the rig.
const (
	Move    Signal = "move"    // continuous 2D.
	Look    Signal = "look"    // continuous 2D.
	Ascend  Signal = "ascend"  // momentary.
	Descend Signal = "descend" // momentary.
)

// Phase is the life cycle point of an input event.
type Phase int

// Event phases.
const (
	Performed Phase = iota // value available.
	Canceled               // value reset.
)

// Event is a discrete change to one signal.
// X and Y are only read for the 2D signals.
type Event struct {
	Signal Signal
	Phase  Phase
	X, Y   float64
}

// Axis is a 2D input value, usually in the range -1 to 1 per component.
type Axis struct{ X, Y float64 }

// Signals is the latest resting value of every input. It is updated by
// events and read once a frame.
type Signals struct {
	Move     Axis    // Strafe X, forward Y.
	Look     Axis    // Yaw X, pitch Y.
	Vertical float64 // -1 descend, 0 none, 1 ascend.
}

// Apply updates the signal state from a single event.
//
// The vertical signal only remembers the last button event: releasing
// descend while ascend is still held leaves Vertical at 0.
func (s *Signals) Apply(e Event) {
	switch e.Signal {
	case Move:
		s.Move = Axis{}
		if e.Phase == Performed {
			s.Move = Axis{e.X, e.Y}
		}
	case Look:
		s.Look = Axis{}
		if e.Phase == Performed {
			s.Look = Axis{e.X, e.Y}
		}
	case Ascend:
		s.Vertical = 0
		if e.Phase == Performed {
			s.Vertical = 1
		}
	case Descend:
		s.Vertical = 0
		if e.Phase == Performed {
			s.Vertical = -1
		}
	}
}

// Reset zeroes all signals.
func (s *Signals) Reset() { *s = Signals{} }
