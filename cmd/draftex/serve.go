package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ebisse/draftex"
	"github.com/ebisse/draftex/internal/server"
)

// runServe starts the HTTP editing server and blocks until interrupted.
func runServe(args []string, logger *zap.Logger) error {
	f, err := parseServeFlags(args)
	if err != nil {
		return err
	}

	cfg := draftex.DefaultConfig()
	if f.config != "" {
		cfg, err = draftex.LoadConfig(f.config)
		if err != nil {
			return err
		}
	}
	if f.addr != "" {
		host, portStr, err := net.SplitHostPort(f.addr)
		if err != nil {
			return err
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return err
		}
		cfg.Server.Host, cfg.Server.Port = host, port
	}
	if f.assistantURL != "" {
		cfg.Assistant.URL = f.assistantURL
	}

	svc := draftex.New(
		draftex.WithDebounce(cfg.Debounce()),
		draftex.WithPage(cfg.PageSettings()),
	)
	defer func() { _ = svc.Close() }()

	// Seed the session so the first preview request has content.
	if tmpl, err := draftex.Template(cfg.Editor.Template); err == nil {
		svc.Session().ForceReplace(tmpl)
	}

	var assistant draftex.Assistant
	if cfg.Assistant.URL != "" {
		assistant = draftex.NewHTTPAssistant(cfg.Assistant.URL, cfg.AssistantTimeout())
	}

	srv := server.New(svc, assistant, cfg.Server, logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(ctx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
