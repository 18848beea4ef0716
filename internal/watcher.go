package internal

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// WatchDir streams paths of PDF files created or written in dir until the
// context is cancelled. The channel is not closed here; the caller owns it.
func WatchDir(ctx context.Context, dir string, fileChan chan<- string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger := slog.Default()
	logger.Info("[WATCHER] monitoring folder", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("[WATCHER] stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			select {
			case fileChan <- event.Name:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("[WATCHER] error", "error", err)
		}
	}
}
