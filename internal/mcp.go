package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/othala/internal/homeservice"
	"github.com/starford/othala/internal/mcpserver"
	"github.com/starford/othala/internal/rubric"
	"github.com/starford/othala/internal/store"
)

// RunMCP starts the MCP stdio server instead of the HTTP API. Logs go to
// stderr so stdout stays free for the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	rub, err := rubric.Load(cfg.Rubric.Path)
	if err != nil {
		return fmt.Errorf("load rubric: %w", err)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()

	svc := homeservice.NewService(st, rub)

	logger.Info("MCP server starting on stdio",
		slog.Int("criteria", rub.Len()))

	return mcpserver.New(svc).ServeStdio()
}
