package main

import (
	flag "github.com/spf13/pflag"
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	config       string
	addr         string
	assistantURL string
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	format  string
	outDir  string
	workers int
	inputs  []string
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	format string
	outDir string
	input  string
}

func parseServeFlags(args []string) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}
	fs.StringVar(&f.config, "config", "", "path to YAML config file")
	fs.StringVar(&f.addr, "addr", "", "listen address (overrides config)")
	fs.StringVar(&f.assistantURL, "assistant-url", "", "assistant endpoint URL (overrides config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func parseBuildFlags(args []string) (*buildFlags, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}
	fs.StringVar(&f.format, "format", "pdf", "artifact format: tex, pdf, docx, html")
	fs.StringVar(&f.outDir, "out", "", "output directory (default: same as source)")
	fs.IntVar(&f.workers, "workers", 0, "parallel conversions (default: auto)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	f.inputs = fs.Args()
	return f, nil
}

func parseWatchFlags(args []string) (*watchFlags, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	f := &watchFlags{}
	fs.StringVar(&f.format, "format", "html", "artifact format rebuilt on save: html, pdf, docx")
	fs.StringVar(&f.outDir, "out", "", "output directory (default: same as source)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		f.input = fs.Arg(0)
	}
	return f, nil
}
