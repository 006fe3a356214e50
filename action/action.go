// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package action groups named logical inputs into maps that can be
// enabled and disabled together. Device polling is left to the caller,
// who reports resolved values with Map.Trigger. Each action turns value
// changes into performed and canceled callbacks.
//
// Action maps and their bindings are normally described by an asset
// file, see LoadAsset.
package action

import (
	"errors"
	"fmt"
)

// Errors returned by maps and assets.
var (
	ErrNoMap     = errors.New("no such action map")
	ErrNoAction  = errors.New("no such action")
	ErrDuplicate = errors.New("duplicate name")
	ErrKind      = errors.New("unknown action kind")
	ErrBinding   = errors.New("invalid binding")
)

// Kind is the type of value an action produces.
type Kind string

// Action kinds.
const (
	Button  Kind = "button"  // momentary, X is 1 while held.
	Vector2 Kind = "vector2" // continuous 2D.
)

// Phase is reported to handlers.
type Phase int

// Handler phases.
const (
	Performed Phase = iota // value changed to non-zero.
	Canceled               // value returned to zero.
)

// String is used in log messages.
func (p Phase) String() string {
	if p == Canceled {
		return "canceled"
	}
	return "performed"
}

// Value is the resolved input for an action.
type Value struct{ X, Y float64 }

// IsZero is true when the control is at rest.
func (v Value) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Context is passed to handlers.
type Context struct {
	Action *Action
	Phase  Phase
	Value  Value // zero for canceled.
}

// Handler reacts to an action phase.
type Handler func(ctx Context)

// handler remembers its id so it can be removed.
type handler struct {
	id    int
	phase Phase
	fn    Handler
}

// Action is a named logical input.
type Action struct {
	Name     string    // Unique within a map.
	Kind     Kind      // Button or Vector2.
	Bindings []Binding // Controls feeding the action.

	value    Value      // last reported value.
	active   bool       // true between performed and canceled.
	handlers []*handler // callbacks in registration order.
	lastID   int        // handler ids.
}

// NewAction creates an action with no handlers.
func NewAction(name string, kind Kind, bindings ...Binding) *Action {
	return &Action{Name: name, Kind: kind, Bindings: bindings}
}

// OnPerformed registers fn for performed events.
// The returned function removes it again.
func (a *Action) OnPerformed(fn Handler) (remove func()) { return a.on(Performed, fn) }

// OnCanceled registers fn for canceled events.
// The returned function removes it again.
func (a *Action) OnCanceled(fn Handler) (remove func()) { return a.on(Canceled, fn) }

func (a *Action) on(phase Phase, fn Handler) func() {
	a.lastID++
	id := a.lastID
	a.handlers = append(a.handlers, &handler{id: id, phase: phase, fn: fn})
	return func() {
		for i, h := range a.handlers {
			if h.id == id {
				a.handlers = append(a.handlers[:i], a.handlers[i+1:]...)
				return
			}
		}
	}
}

// Value is the last reported value.
func (a *Action) Value() Value { return a.value }

// InProgress is true after performed and before canceled.
func (a *Action) InProgress() bool { return a.active }

// update records a new value and fires handlers. A button does not
// fire again while held. A vector fires whenever its value changes.
func (a *Action) update(v Value) {
	switch {
	case v.IsZero():
		if !a.active {
			return
		}
		a.active, a.value = false, Value{}
		a.fire(Canceled, Value{})
	case a.Kind == Button:
		a.value = v
		if a.active {
			return
		}
		a.active = true
		a.fire(Performed, v)
	default:
		if a.active && a.value == v {
			return
		}
		a.active, a.value = true, v
		a.fire(Performed, v)
	}
}

// fire calls the handlers for phase. Handlers may remove themselves.
func (a *Action) fire(phase Phase, v Value) {
	hs := append([]*handler(nil), a.handlers...)
	for _, h := range hs {
		if h.phase == phase {
			h.fn(Context{Action: a, Phase: phase, Value: v})
		}
	}
}

// reset drops the value without calling handlers.
func (a *Action) reset() { a.active, a.value = false, Value{} }

// Map is a named group of actions. A new map is disabled.
type Map struct {
	Name    string
	actions []*Action
	byName  map[string]*Action
	enabled bool
}

// NewMap creates an empty, disabled action map.
func NewMap(name string) *Map {
	return &Map{Name: name, byName: map[string]*Action{}}
}

// Add appends an action. Names must be unique within the map.
func (m *Map) Add(a *Action) error {
	if _, ok := m.byName[a.Name]; ok {
		return fmt.Errorf("map %q action %q: %w", m.Name, a.Name, ErrDuplicate)
	}
	m.byName[a.Name] = a
	m.actions = append(m.actions, a)
	return nil
}

// Action returns the named action or nil.
func (m *Map) Action(name string) *Action { return m.byName[name] }

// Actions returns the actions in the order they were added.
func (m *Map) Actions() []*Action { return m.actions }

// Enable starts delivering triggers to handlers.
func (m *Map) Enable() { m.enabled = true }

// Disable stops delivering triggers. In progress actions are dropped
// without canceled callbacks so the next trigger starts fresh.
func (m *Map) Disable() {
	if !m.enabled {
		return
	}
	m.enabled = false
	for _, a := range m.actions {
		a.reset()
	}
}

// Enabled is true when triggers reach handlers.
func (m *Map) Enabled() bool { return m.enabled }

// Trigger reports the current value of the named action. Triggers on a
// disabled map are ignored.
func (m *Map) Trigger(name string, v Value) error {
	a, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("map %q action %q: %w", m.Name, name, ErrNoAction)
	}
	if m.enabled {
		a.update(v)
	}
	return nil
}

// Bind registers a pair of plain callbacks with the named action. The
// returned function removes both. Unknown names bind nothing.
func (m *Map) Bind(name string, performed, canceled func(x, y float64)) (unbind func()) {
	a, ok := m.byName[name]
	if !ok {
		return func() {}
	}
	rp := a.OnPerformed(func(ctx Context) { performed(ctx.Value.X, ctx.Value.Y) })
	rc := a.OnCanceled(func(ctx Context) { canceled(ctx.Value.X, ctx.Value.Y) })
	return func() { rp(); rc() }
}
