package presets

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"preset-manager/core/codec"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period Watch waits for before validating.
const DefaultDebounce = 300 * time.Millisecond

// WatchResult is the outcome of validating one changed library file.
type WatchResult struct {
	Path       string
	Validation *Validation
	Err        error
}

// Watch validates library files as they change until ctx is done. Events
// are collected until the library is quiet for debounce; report is then
// called once per changed file, in path order.
func (s *Service) Watch(ctx context.Context, debounce time.Duration, report func(WatchResult)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.libraryDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.libraryDir, err)
	}
	s.logger.Info("Watching preset library", zap.String("dir", s.libraryDir), zap.Duration("debounce", debounce))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !codec.IsSupported(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = map[string]struct{}{}

			for _, p := range paths {
				// Renamed away or deleted before the quiet period ended
				if _, err := os.Stat(p); err != nil {
					continue
				}
				v, err := s.Validate(p)
				report(WatchResult{Path: p, Validation: v, Err: err})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watch error", zap.Error(err))
		}
	}
}
