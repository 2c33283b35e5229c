// Command draftex runs the paper-drafting core: an HTTP editing server, a
// one-shot/batch converter for .tex files, and a rebuild-on-save watcher.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

const usage = `draftex - LaTeX-subset preview and export

Usage:
  draftex serve  [--config FILE] [--addr HOST:PORT] [--assistant-url URL]
  draftex build  [--format tex|pdf|docx|html] [--out DIR] [--workers N] FILE...
  draftex watch  [--format html] [--out DIR] FILE
  draftex templates
  draftex version
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env
	// var, in which case runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	logger, err := newLogger(os.Getenv("DRAFTEX_DEBUG") != "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var runErr error
	switch os.Args[1] {
	case "serve":
		runErr = runServe(os.Args[2:], logger)
	case "build":
		runErr = runBuild(os.Args[2:], logger)
	case "watch":
		runErr = runWatch(os.Args[2:], logger)
	case "templates":
		runErr = runTemplates()
	case "version":
		fmt.Println("draftex", Version)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

// newLogger returns a zap logger: human-readable in debug mode, JSON at
// info level otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
