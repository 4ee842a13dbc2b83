package crew

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	stopSignalFile  = "stop"
	pauseSignalFile = "pause"

	// signalPollInterval is the fallback refresh interval when the
	// fsnotify watcher is unavailable.
	signalPollInterval = 2 * time.Second
)

// SignalWatcher observes the project's signals directory so a run can be
// stopped or paused from outside the process: touching a "stop" or
// "pause" file in .planforge/signals/ takes effect between tasks.
type SignalWatcher struct {
	signalsDir string

	mu          sync.RWMutex
	stopSignal  bool
	pauseSignal bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewSignalWatcher creates a watcher for the given project root.
func NewSignalWatcher(projectRoot string) (*SignalWatcher, error) {
	signalsDir := filepath.Join(projectRoot, ".planforge", "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return nil, err
	}

	sw := &SignalWatcher{
		signalsDir: signalsDir,
		done:       make(chan struct{}),
	}
	sw.refresh()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watcher - polling fallback applies.
		return sw, nil
	}
	if err := watcher.Add(signalsDir); err != nil {
		watcher.Close()
		return sw, nil
	}
	sw.watcher = watcher

	go sw.watch()

	return sw, nil
}

// watch reacts to filesystem events in the signals directory, with a
// periodic refresh in case events are missed.
func (sw *SignalWatcher) watch() {
	ticker := time.NewTicker(signalPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sw.done:
			return
		case _, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			sw.refresh()
		case _, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
		case <-ticker.C:
			sw.refresh()
		}
	}
}

// refresh re-reads the signal files' presence.
func (sw *SignalWatcher) refresh() {
	_, stopErr := os.Stat(filepath.Join(sw.signalsDir, stopSignalFile))
	_, pauseErr := os.Stat(filepath.Join(sw.signalsDir, pauseSignalFile))

	sw.mu.Lock()
	sw.stopSignal = stopErr == nil
	sw.pauseSignal = pauseErr == nil
	sw.mu.Unlock()
}

// ShouldStop returns true if a stop signal is present.
func (sw *SignalWatcher) ShouldStop() bool {
	sw.refresh()
	sw.mu.RLock()
	defer sw.mu.RUnlock()
	return sw.stopSignal
}

// WaitWhilePaused blocks while a pause signal is present. Returns early
// if the context is canceled or a stop signal appears.
func (sw *SignalWatcher) WaitWhilePaused(ctx context.Context) error {
	for {
		sw.refresh()
		sw.mu.RLock()
		paused, stopped := sw.pauseSignal, sw.stopSignal
		sw.mu.RUnlock()

		if !paused || stopped {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(signalPollInterval):
		}
	}
}

// ClearStop removes a stop signal file, if present.
func (sw *SignalWatcher) ClearStop() error {
	err := os.Remove(filepath.Join(sw.signalsDir, stopSignalFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	sw.refresh()
	return nil
}

// Close stops the watcher goroutine.
func (sw *SignalWatcher) Close() {
	close(sw.done)
	if sw.watcher != nil {
		sw.watcher.Close()
	}
}
