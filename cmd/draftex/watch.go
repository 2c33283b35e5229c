package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ebisse/draftex"
)

// watchDebounce is tighter than the interactive default; saves from an
// editor arrive as single events, not keystroke bursts.
const watchDebounce = 250 * time.Millisecond

// runWatch rebuilds the artifact every time the watched file is saved.
// The edit session debounces rapid successive saves the same way it
// debounces keystrokes.
func runWatch(args []string, logger *zap.Logger) error {
	f, err := parseWatchFlags(args)
	if err != nil {
		return err
	}
	if f.input == "" {
		return errors.New("watch: no input file")
	}

	target, err := filepath.Abs(f.input)
	if err != nil {
		return err
	}

	svc := draftex.New(draftex.WithDebounce(watchDebounce))
	defer func() { _ = svc.Close() }()

	out := artifactPath(target, f.format, f.outDir)
	svc.Session().SetOnPublish(func(snap draftex.Snapshot) {
		if err := writeArtifact(svc, snap, f.format, out); err != nil {
			logger.Error("rebuild failed", zap.Error(err))
			return
		}
		logger.Info("rebuilt",
			zap.Int64("revision", snap.Revision),
			zap.String("out", out))
	})

	// Watch the directory, not the file: editors that write via
	// rename-and-replace would otherwise detach the watch on first save.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	if err := feedSource(svc, target); err != nil {
		return err
	}
	logger.Info("watching", zap.String("file", target), zap.String("format", f.format))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := feedSource(svc, target); err != nil {
				logger.Warn("read failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-stop:
			svc.Session().Flush()
			return nil
		}
	}
}

// feedSource pushes the file's current content into the edit session.
func feedSource(svc *draftex.Service, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	svc.Session().SetText(string(data))
	return nil
}

// writeArtifact serializes the published snapshot into the watched format.
func writeArtifact(svc *draftex.Service, snap draftex.Snapshot, format, out string) error {
	var data []byte
	var err error
	switch format {
	case "html":
		data = []byte(draftex.RenderPreviewPage(snap.Source, nil))
	default:
		ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
		defer cancel()
		data, err = svc.Export(ctx, draftex.ExportFormat(format))
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
