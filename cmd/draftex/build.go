package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ebisse/draftex"
)

// maxBuildWorkers caps parallel conversions; each PDF render opens a
// browser page, so more buys little.
const maxBuildWorkers = 4

// buildTimeout bounds one file's conversion.
const buildTimeout = 2 * time.Minute

// runBuild converts one or more .tex files to the requested artifact,
// fanning out over a small worker pool.
func runBuild(args []string, logger *zap.Logger) error {
	f, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	if len(f.inputs) == 0 {
		return errors.New("build: no input files")
	}

	svc := draftex.New()
	defer func() { _ = svc.Close() }()

	workers := resolvePoolSize(f.workers)
	logger.Info("building", zap.Int("files", len(f.inputs)), zap.Int("workers", workers))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for _, input := range f.inputs {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := convertFile(svc, path, f.format, f.outDir); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
				logger.Error("conversion failed", zap.String("file", path), zap.Error(err))
				return
			}
			logger.Info("converted", zap.String("file", path), zap.String("format", f.format))
		}(input)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// convertFile converts one source file and writes the artifact next to it
// or into outDir.
func convertFile(svc *draftex.Service, path, format, outDir string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	var data []byte
	switch format {
	case "html":
		data = []byte(draftex.RenderPreviewPage(string(source), nil))
	default:
		data, err = svc.Convert(ctx, string(source), draftex.ExportFormat(format))
		if err != nil {
			return err
		}
	}

	out := artifactPath(path, format, outDir)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

// artifactPath derives the output file path for a source file.
func artifactPath(path, format, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + format
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), base)
	}
	return filepath.Join(outDir, base)
}

// resolvePoolSize picks the worker count: explicit request wins, otherwise
// CPU count up to the cap.
func resolvePoolSize(requested int) int {
	if requested > 0 {
		return requested
	}
	n := runtime.NumCPU()
	if n > maxBuildWorkers {
		n = maxBuildWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}
