package config

import (
	"path/filepath"

	fsnotify "github.com/fsnotify/fsnotify"
)

// Watcher signals changes to a single config file. The parent directory is
// watched because editors usually replace files rather than write in place.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
	ch   chan struct{}
	done chan struct{}
}

// Watch starts watching path. Bursts of events collapse into one pending
// signal on C.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	cw := &Watcher{w: w, path: abs, ch: make(chan struct{}, 1), done: make(chan struct{})}
	go cw.loop()
	return cw, nil
}

func (cw *Watcher) loop() {
	defer close(cw.done)
	defer close(cw.ch)
	for {
		select {
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			select {
			case cw.ch <- struct{}{}:
			default:
			}
		case _, ok := <-cw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

// C delivers one value per burst of changes. It is closed once the watcher
// stops.
func (cw *Watcher) C() <-chan struct{} { return cw.ch }

// Path is the absolute path being watched.
func (cw *Watcher) Path() string { return cw.path }

func (cw *Watcher) Close() error {
	err := cw.w.Close()
	<-cw.done
	return err
}
