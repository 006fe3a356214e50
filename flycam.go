// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Flycam is a free-fly camera viewer. The camera rig is flown through
// a wireframe scene using keyboard, mouse or gamepad.
//
// The input actions are described by an action asset, see assets/actions.yaml.
// The rig tunables are read from a configuration file, see flycam.yaml,
// and are reapplied whenever that file changes.
package main

import (
	"bytes"
	"container/list"
	_ "embed"
	"flag"
	"log"
	"runtime/debug"

	"github.com/gazed/flycam/action"
	"github.com/gazed/flycam/rig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// defaultActions is used when the configuration names no action asset.
//
//go:embed assets/actions.yaml
var defaultActions []byte

// main reads the configuration, recovers saved preferences and runs
// the viewer until the user quits.
func main() {
	defer catchErrors()
	cfgPath := flag.String("config", "flycam.yaml", "configuration file")
	reset := flag.Bool("reset", false, "forget the saved window and pose")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("flycam: %s", err)
	}
	logger, err := newLogger(cfg.Log, isDebug(&flycam{}))
	if err != nil {
		log.Fatalf("flycam: %s", err)
	}
	defer logger.Sync()
	setLogger(logger.Sugar())

	fc, err := newFlycam(cfg, *cfgPath)
	if err != nil {
		logger.Error("Failed to initialize", zap.Error(err))
		return
	}
	defer fc.shutdown()
	fc.prefs(*reset)
	logf("Flycam %s started with %s", version, *cfgPath)
	if err := ebiten.RunGame(fc); err != nil {
		logger.Error("Run failed", zap.Error(err))
	}
}

// version is set by the build using ld flags. Eg.
//    go build -ldflags "-X main.version `git describe`"
var version string

// catchErrors is for debugging developer loads. Panics before the
// logger exists go to the standard log.
func catchErrors() {
	if r := recover(); r != nil {
		if sugar == nil {
			log.Printf("Panic %s: %s Shutting down.", r, debug.Stack())
			return
		}
		warnf("Panic %s: %s Shutting down.", r, debug.Stack())
	}
}

// main
// ===========================================================================
// flycam

// flycam is the main program. It owns the camera rig and the input
// layer feeding it, and is driven by the ebiten update and draw callbacks.
type flycam struct {
	cfg     *Config         // Current configuration.
	cfgPath string          // Configuration file, watched for changes.
	state   flyState        // Flying or paused.
	eventq  *list.List      // Viewer event queue.
	actions *action.Map     // Input actions feeding the rig.
	dev     *devices        // Hardware to actions.
	ctrl    *rig.Controller // Camera rig.
	body    *rig.Transform  // Yawed rig body.
	eye     *rig.Transform  // Pitched camera carried by the body.
	scene   *scene          // What is being looked at.
	lens    *lens           // Projects the scene for the eye.
	hud     *hud            // Text overlay.
	clip    *clipper        // Copies poses. Nil until prefs.
	watch   *watcher        // Config file changes. Nil if not watching.
	saver   *Saver          // Window and pose between sessions.
	cursor  func(mode ebiten.CursorModeType)
	quit    bool // Set to exit on the next update.
}

// State transition constants are passed to the state methods which
// result in a new state.
const (
	flyGame   = iota // Transition to the flying state.
	pauseGame        // Transition to the paused state.
	quitGame         // Leave the program.
)

// flyState is realized through functions that process state transitions.
type flyState func(int) flyState

// newFlycam creates the rig and its input layer. Nothing is shown until
// the game loop is started.
func newFlycam(cfg *Config, cfgPath string) (*flycam, error) {
	fc := &flycam{cfg: cfg, cfgPath: cfgPath}
	fc.eventq = list.New()
	fc.cursor = ebiten.SetCursorMode
	asset, err := fc.loadActions()
	if err != nil {
		return nil, err
	}
	if fc.actions, err = asset.Map(cfg.Map); err != nil {
		return nil, err
	}
	if fc.dev, err = newDevices(fc.actions); err != nil {
		return nil, err
	}
	fc.body = rig.NewTransform().SetAt(0, cfg.Rig.Height, 0)
	fc.eye = fc.body.Child()
	fc.ctrl = rig.New(fc.actions, fc.body)
	for _, name := range missingSignals(fc.actions) {
		warnf("Action map %q has no %q action, its controls do nothing", fc.actions.Name, name)
	}
	fc.ctrl.Main = fc.mainCamera
	fc.tune(cfg)
	fc.ctrl.SetOrientation(rig.Orientation{})
	fc.scene = newScene()
	fc.lens = newLens(cfg.Window.Fov)
	fc.hud = &hud{}
	fc.state = fc.paused
	return fc, nil
}

// loadActions reads the action asset named by the configuration or
// falls back to the built in one.
func (fc *flycam) loadActions() (*action.Asset, error) {
	if fc.cfg.Actions == "" {
		return action.LoadAsset(bytes.NewReader(defaultActions))
	}
	return action.ReadAsset(fc.cfg.Actions)
}

// missingSignals lists the rig signals with no action in the map.
func missingSignals(m *action.Map) (missing []string) {
	for _, sig := range []rig.Signal{rig.Move, rig.Look, rig.Ascend, rig.Descend} {
		if m.Action(string(sig)) == nil {
			missing = append(missing, string(sig))
		}
	}
	return missing
}

// mainCamera is the camera movement is relative to.
func (fc *flycam) mainCamera() *rig.Transform { return fc.eye }

// tune applies the rig configuration.
func (fc *flycam) tune(cfg *Config) {
	cfg.Rig.tune(fc.ctrl)
	fc.ctrl.Pitch = nil
	if cfg.Rig.PitchCamera {
		fc.ctrl.Pitch = fc.eye
	} else {
		fc.eye.Rot.SetAa(1, 0, 0, 0)
	}
}

// prefs restores the saved window and pose, then starts the parts that
// need the platform: clipboard, config watcher and window.
func (fc *flycam) prefs(reset bool) {
	fc.saver = newSaver()
	if reset {
		fc.saver.reset()
	}
	fc.saver.restore()
	fc.restorePose(fc.saver.Pose)
	fc.clip = newClipper()
	if w, err := newWatcher(fc.cfgPath); err == nil {
		fc.watch = w
	} else {
		warnf("Config changes will be ignored: %s", err)
	}

	w, h := fc.cfg.Window.Width, fc.cfg.Window.Height
	if fc.saver.W > 0 && fc.saver.H > 0 {
		w, h = fc.saver.W, fc.saver.H
	}
	ebiten.SetWindowTitle(fc.cfg.Window.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fc.saver.X > 0 || fc.saver.Y > 0 {
		ebiten.SetWindowPosition(fc.saver.X, fc.saver.Y)
	}
	fc.state = fc.state(flyGame)
}

// Update is the ebiten tick. It runs at a fixed rate so the elapsed time
// for the rig is one tick.
func (fc *flycam) Update() error {
	fc.checkConfig()
	fc.processInput()
	for fc.eventq.Len() > 0 {
		transition := fc.processEvents()
		fc.state = fc.state(transition)
	}
	if fc.quit {
		fc.persist()
		return ebiten.Termination
	}
	fc.dev.poll()
	if fc.ctrl.Enabled() {
		fc.ctrl.Update(1 / float64(ebiten.TPS()))
	}
	fc.hud.tick()
	return nil
}

// Draw renders the scene from the eye and the overlay.
func (fc *flycam) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	fc.scene.draw(screen, fc.eye, fc.lens)
	fc.hud.draw(screen, fc.ctrl, !fc.ctrl.Enabled())
	if d, ok := interface{}(fc).(debugger); ok {
		d.drawDebug(screen)
	}
}

// Layout uses the window size as is.
func (fc *flycam) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// processInput turns viewer keys into events. Flying input goes
// through the action map instead.
func (fc *flycam) processInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		publish(fc.eventq, togglePause, nil)
	}
	if !fc.ctrl.Enabled() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		publish(fc.eventq, resumeFlying, nil)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		publish(fc.eventq, copyPose, nil)
	}
	if d, ok := interface{}(fc).(debugger); ok {
		d.processDebugInput(fc.eventq)
	}
}

// processEvents handles queued events until one of them changes state.
// It returns the transition for the state function.
func (fc *flycam) processEvents() (transition int) {
	current := pauseGame
	if fc.ctrl.Enabled() {
		current = flyGame
	}
	for fc.eventq.Len() > 0 {
		e := fc.eventq.Front()
		fc.eventq.Remove(e)
		event := e.Value.(*event)
		switch event.id {
		case togglePause:
			if current == flyGame {
				return pauseGame
			}
			return quitGame
		case resumeFlying:
			return flyGame
		case copyPose:
			if err := fc.clip.copyPose(fc.pose()); err != nil {
				warnf("copy pose: %s", err)
				fc.hud.show("pose not copied")
				continue
			}
			fc.hud.show("pose copied")
		case resetPose:
			fc.body.SetAt(0, fc.cfg.Rig.Height, 0)
			fc.ctrl.SetOrientation(rig.Orientation{})
			fc.hud.show("pose reset")
		case reloadConfig:
			fc.reload()
		default:
			logf("processEvents: unknown event %d", event.id)
		}
	}
	return current
}

// flying is the state where input moves the rig.
func (fc *flycam) flying(transition int) flyState {
	switch transition {
	case pauseGame:
		fc.pause()
		return fc.paused
	case flyGame:
	default:
		logf("flying: invalid transition %d", transition)
	}
	return fc.flying
}

// paused is the state where the cursor is released and the rig ignores
// input. The user can resume or quit.
func (fc *flycam) paused(transition int) flyState {
	switch transition {
	case flyGame:
		fc.fly()
		return fc.flying
	case quitGame:
		fc.quit = true
	case pauseGame:
	default:
		logf("paused: invalid transition %d", transition)
	}
	return fc.paused
}

// fly captures the cursor and starts the rig. Input that changed while
// paused is dropped and held controls are reported again.
func (fc *flycam) fly() {
	fc.cursor(ebiten.CursorModeCaptured)
	fc.ctrl.ResetInput()
	fc.ctrl.Enable()
	fc.dev.resync()
}

// pause stops the rig and releases the cursor.
func (fc *flycam) pause() {
	fc.ctrl.Disable()
	fc.cursor(ebiten.CursorModeVisible)
}

// checkConfig queues a reload when the config file changed.
func (fc *flycam) checkConfig() {
	if fc.watch == nil {
		return
	}
	select {
	case <-fc.watch.Events:
		publish(fc.eventq, reloadConfig, nil)
	case err := <-fc.watch.Errors:
		warnf("config watch: %s", err)
	default:
	}
}

// reload rereads the configuration and applies the parts that can
// change while running. A bad file keeps the current settings.
func (fc *flycam) reload() {
	cfg, err := loadConfig(fc.cfgPath)
	if err != nil {
		warnf("Config not reloaded: %s", err)
		fc.hud.show("config error, see log")
		return
	}
	fc.tune(cfg)
	fc.lens.fov = cfg.Window.Fov
	fc.cfg.Rig = cfg.Rig
	fc.cfg.Window.Fov = cfg.Window.Fov
	logf("Config reloaded: move %g look %g ascend %g", cfg.Rig.MoveSpeed, cfg.Rig.LookSpeed, cfg.Rig.AscendSpeed)
	fc.hud.show("config reloaded")
}

// pose is the current rig location and orientation.
func (fc *flycam) pose() Pose {
	x, y, z := fc.body.WorldAt()
	o := fc.ctrl.Orientation()
	return Pose{X: x, Y: y, Z: z, Yaw: o.Yaw, Pitch: o.Pitch, Valid: true}
}

// restorePose puts the rig back where it was left.
func (fc *flycam) restorePose(p Pose) {
	if !p.Valid {
		return
	}
	fc.body.SetAt(p.X, p.Y, p.Z)
	fc.ctrl.SetOrientation(rig.Orientation{Yaw: p.Yaw, Pitch: p.Pitch})
}

// persist saves the window and pose for the next session.
func (fc *flycam) persist() {
	if fc.saver == nil {
		return
	}
	x, y := ebiten.WindowPosition()
	w, h := ebiten.WindowSize()
	fc.saver.persistWindow(x, y, w, h)
	fc.saver.persistPose(fc.pose())
}

// shutdown releases the rig bindings and stops watching the config.
func (fc *flycam) shutdown() {
	fc.ctrl.Close()
	if fc.watch != nil {
		if err := fc.watch.Close(); err != nil {
			warnf("close watcher: %s", err)
		}
	}
}

// flycam
// ===========================================================================
// events

// Viewer events.
const (
	_            = iota // start at 1.
	togglePause         // Pause flying, or quit when paused.
	resumeFlying        // Capture the cursor and fly.
	copyPose            // Copy the pose to the clipboard.
	resetPose           // Return to the start.
	reloadConfig        // Config file changed.
)

// event is the standard structure for all viewer events.
type event struct {
	id   int         // unique event id.
	data interface{} // nil, value, or struct; depends on the event.
}

// publish adds the event to the end of the event queue.
func publish(eventq *list.List, eventID int, eventData interface{}) {
	eventq.PushBack(&event{id: eventID, data: eventData})
}

// debugger is implemented in debug builds.
type debugger interface {
	processDebugInput(eventq *list.List)
	drawDebug(screen *ebiten.Image)
}

// isDebug is true for debug builds.
func isDebug(gi interface{}) bool {
	_, ok := gi.(debugger)
	return ok
}
