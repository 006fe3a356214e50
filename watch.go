// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcher reports changes to a single file. The directory is watched
// rather than the file so that editors which replace the file on save
// are still noticed.
type watcher struct {
	fsw     *fsnotify.Watcher
	file    string        // cleaned path of the watched file.
	Events  chan string   // file changed.
	Errors  chan error    // watch failures.
	holdoff time.Duration // quiet time before a change is reported.
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// newWatcher starts watching file.
func newWatcher(file string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	file = filepath.Clean(file)
	if err := fsw.Add(filepath.Dir(file)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", file, err)
	}
	w := &watcher{
		fsw:     fsw,
		file:    file,
		Events:  make(chan string, 4),
		Errors:  make(chan error, 1),
		holdoff: 100 * time.Millisecond,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// run forwards relevant events until closed. A change is reported once
// the file has been quiet for the holdoff time so that a save made of
// several writes is read once it is complete.
func (w *watcher) run() {
	defer close(w.done)
	var quiet *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if quiet == nil {
				quiet = time.NewTimer(w.holdoff)
			} else {
				quiet.Reset(w.holdoff)
			}
			fire = quiet.C
		case <-fire:
			fire = nil
			select {
			case w.Events <- w.file:
			default: // a change is already pending.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			if quiet != nil {
				quiet.Stop()
			}
			return
		}
	}
}
