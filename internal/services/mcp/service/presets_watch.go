package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/louisbranch/dicepool/internal/platform/timeouts"
	"github.com/louisbranch/dicepool/internal/preset"
)

// presetWatcher reloads a preset file whenever it changes on disk.
//
// The parent directory is watched rather than the file so editors that
// replace the file on save still trigger a reload.
type presetWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	apply    func(preset.Catalog)
	debounce time.Duration
}

func newPresetWatcher(path string, apply func(preset.Catalog)) (*presetWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve preset path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create preset watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &presetWatcher{
		path:     abs,
		watcher:  watcher,
		apply:    apply,
		debounce: timeouts.PresetReloadDebounce,
	}, nil
}

// Run handles file events until ctx ends or the watcher is closed.
func (p *presetWatcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(p.debounce)
			} else {
				timer.Reset(p.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			p.reload()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("preset watcher: %v", err)
		}
	}
}

// reload keeps the current catalog when the file does not parse.
func (p *presetWatcher) reload() {
	catalog, err := preset.Load(p.path)
	if err != nil {
		log.Printf("reload presets %s: %v", p.path, err)
		return
	}
	p.apply(catalog)
	log.Printf("reloaded %d presets from %s", catalog.Len(), p.path)
}

// Close stops watching the file system.
func (p *presetWatcher) Close() error {
	return p.watcher.Close()
}
