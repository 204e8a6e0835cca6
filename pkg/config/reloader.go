// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is emitted by HotReloader after the watched configuration files changed.
type Change struct {
	// Path is the file that triggered the reload.
	Path string
	// Settings is the merged configuration after the reload.
	Settings map[string]interface{}
	// Err is set when the reload or the watcher failed; Settings is nil then.
	Err error
}

// HotReloader watches the manager's configuration files and reloads them on change.
// Bursts of filesystem events are collapsed into a single reload per debounce window.
type HotReloader struct {
	manager  *Manager
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	events  chan Change
	done    chan struct{}
	stop    sync.Once
}

// NewHotReloader creates a reloader for manager. A non-positive debounce disables debouncing.
func NewHotReloader(manager *Manager, debounce time.Duration) *HotReloader {
	return &HotReloader{
		manager:  manager,
		debounce: debounce,
		events:   make(chan Change, 4),
		done:     make(chan struct{}),
	}
}

// Start begins watching the configuration directory.
func (r *HotReloader) Start() error {
	if r.manager == nil {
		return errors.New("hot reloader requires a config manager")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher != nil {
		return errors.New("hot reloader already started")
	}
	select {
	case <-r.done:
		return errors.New("hot reloader stopped")
	default:
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory rather than the files: editors replace files on save
	// and a watch on the old inode would be lost.
	if err := watcher.Add(r.manager.options.WorkDir); err != nil {
		_ = watcher.Close()
		return err
	}
	r.watcher = watcher

	go r.loop(watcher, r.watchedFiles())
	return nil
}

// Events returns the channel of reload results. It is closed after Stop.
func (r *HotReloader) Events() <-chan Change {
	return r.events
}

// Stop stops watching. It is safe to call more than once.
func (r *HotReloader) Stop() error {
	var err error
	r.stop.Do(func() {
		close(r.done)
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.watcher != nil {
			err = r.watcher.Close()
		} else {
			close(r.events)
		}
	})
	return err
}

func (r *HotReloader) watchedFiles() map[string]bool {
	files := make(map[string]bool)
	for _, f := range r.manager.Files() {
		files[absPath(f)] = true
	}
	return files
}

func (r *HotReloader) loop(watcher *fsnotify.Watcher, files map[string]bool) {
	defer close(r.events)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-r.done:
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !files[absPath(ev.Name)] {
				continue
			}
			pending = ev.Name
			if r.debounce <= 0 {
				r.reload(pending)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			r.reload(pending)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.emit(Change{Err: err})
		}
	}
}

func (r *HotReloader) reload(path string) {
	if err := r.manager.Load(); err != nil {
		r.emit(Change{Path: path, Err: err})
		return
	}
	r.emit(Change{Path: path, Settings: r.manager.AllSettings()})
}

func (r *HotReloader) emit(change Change) {
	select {
	case r.events <- change:
	case <-r.done:
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
