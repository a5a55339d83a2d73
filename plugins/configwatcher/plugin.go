// Package configwatcher watches the spritebench config file and signals when
// it changes, so a long-running benchmark can rerun with the new settings.
package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/spritebench/pkg/log"
	"github.com/bft-labs/spritebench/pkg/spritebench"
)

// Plugin implements config watching functionality.
// It watches the directory holding the config file, so editors that replace
// the file by rename are noticed too.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	path          string
	debounceDelay time.Duration
	onChange      func(ctx context.Context)

	// Runtime state
	logger   log.Logger
	changes  chan struct{}
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the config file to watch. Empty disables the watcher.
	Path string

	// DebounceDelay is the delay to wait after a file change before signalling.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// OnChange is called after each debounced change, from a timer goroutine.
	OnChange func(ctx context.Context)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		onChange:      cfg.OnChange,
		logger:        log.NewNoopLogger(),
		changes:       make(chan struct{}, 1),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Changes delivers one value per debounced change. Changes that arrive while
// a value is pending are coalesced.
func (p *Plugin) Changes() <-chan struct{} {
	return p.changes
}

// Initialize starts watching the config file.
func (p *Plugin) Initialize(ctx context.Context, cfg spritebench.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cfg.Logger != nil {
		p.logger = cfg.Logger
	}
	if p.path == "" {
		p.logger.Warn("config watcher disabled: no config file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	p.logger.Info("config watcher plugin initialized", log.String("path", p.path))
	return nil
}

// Shutdown stops the watcher and any pending debounce timer.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.debounceSignal(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceSignal(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.logger.Info("config file changed", log.String("path", p.path))
		select {
		case p.changes <- struct{}{}:
		default:
		}
		if p.onChange != nil {
			p.onChange(ctx)
		}
	})
}

// Ensure Plugin implements spritebench.Plugin.
var _ spritebench.Plugin = (*Plugin)(nil)
