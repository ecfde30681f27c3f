package converter

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pnguncrush/core"
	"pnguncrush/logging"
)

// fileState is what the watcher remembers about a file between polls.
type fileState struct {
	size    int64
	modTime time.Time
}

// Watcher polls the input directory and converts files as they appear or
// change. Polling keeps the behavior identical across platforms and network
// mounts where inotify-style events are unreliable.
type Watcher struct {
	config    *core.Config
	logger    *logging.Logger
	processor *Processor
	done      chan struct{}

	seenMux sync.Mutex
	seen    map[string]fileState
}

// NewWatcher creates a Watcher around an existing processor.
func NewWatcher(cfg *core.Config, logger *logging.Logger, processor *Processor) *Watcher {
	return &Watcher{
		config:    cfg,
		logger:    logger,
		processor: processor,
		done:      make(chan struct{}),
		seen:      make(map[string]fileState),
	}
}

// Done returns a channel that's closed when the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Start runs the polling loop until the context is cancelled. The first poll
// happens immediately so existing files are picked up at startup.
func (w *Watcher) Start(ctx context.Context) {
	defer close(w.done)

	w.logger.Info("Watching for crushed PNGs",
		zap.String("dir", w.config.InputDir),
		zap.Duration("interval", w.config.WatchInterval))

	ticker := time.NewTicker(w.config.WatchInterval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Warn("Stopping watcher due to context cancellation")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll scans once and converts anything new or modified since the last poll.
func (w *Watcher) poll(ctx context.Context) {
	files, err := ScanPNGFiles(w.config.InputDir)
	if err != nil {
		w.logger.Error("Scan failed, retrying next interval", zap.Error(err))
		return
	}

	var pending []string
	for _, path := range files {
		if w.isOwnOutput(path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue // File vanished between scan and stat.
		}
		state := fileState{size: info.Size(), modTime: info.ModTime()}
		w.seenMux.Lock()
		previous, known := w.seen[path]
		w.seen[path] = state
		w.seenMux.Unlock()
		if !known || previous != state {
			pending = append(pending, path)
		}
	}
	if len(pending) == 0 {
		return
	}

	w.logger.Info("Picked up files", zap.Int("count", len(pending)))
	w.processor.ProcessFiles(ctx, pending)
}

// isOwnOutput filters files the converter itself produced, which matters
// when outputs land inside the watched directory.
func (w *Watcher) isOwnOutput(path string) bool {
	if strings.HasSuffix(path, ".thumb.png") {
		return true
	}
	if w.config.OutputDir == "" && strings.HasSuffix(path, "-normalized.png") {
		return true
	}
	return false
}
