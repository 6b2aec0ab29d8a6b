package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"janconnect/internal/logging"
)

// Watcher re-reads the user config when config.json changes on disk and
// notifies the registered callback with the fresh config. The logging
// config is re-armed as part of the same event so a debug_mode edit takes
// effect without restarting the wizard.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	done    chan struct{}
}

// Watch starts watching path's directory for changes to the config file.
// onChange runs on the watcher goroutine; callers needing UI-thread
// delivery must forward it themselves.
func Watch(path string, onChange func(*UserConfig)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace files on save,
	// which drops a plain file watch.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fw, path: path, done: make(chan struct{})}

	go func() {
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				logging.Boot("config changed on disk: %s", event.Name)
				if err := logging.ReloadConfig(); err != nil {
					logging.BootError("reload logging config: %v", err)
				}
				cfg, err := Load(path)
				if err != nil {
					logging.BootError("reload config: %v", err)
					continue
				}
				if onChange != nil {
					onChange(cfg)
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logging.BootError("config watcher: %v", err)
			case <-w.done:
				return
			}
		}
	}()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
