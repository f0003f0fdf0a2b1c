package toolexec

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/qbicsoftware/sample-service/internal/pkg/ctxlog"
	"github.com/qbicsoftware/sample-service/internal/pkg/slogex"
)

// ShutdownHook runs Tool.Shutdown at most once.
type ShutdownHook struct {
	tool    Tool
	timeout time.Duration
	once    sync.Once
}

func NewShutdownHook(tool Tool, timeout time.Duration) *ShutdownHook {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	return &ShutdownHook{tool: tool, timeout: timeout}
}

// Run calls Tool.Shutdown on first use and is a no-op afterwards. It returns
// when Shutdown returns or the timeout expires, whichever comes first.
// Errors and panics raised by Shutdown are logged and swallowed.
func (h *ShutdownHook) Run(ctx context.Context) {
	h.once.Do(func() { h.run(ctx) })
}

func (h *ShutdownHook) run(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	// parent may already be cancelled by a signal
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("shutdown panicked: %v", r)
			}
		}()
		done <- h.tool.Shutdown(shutdownCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Warn("Shutdown failed", slogex.Error(err))
			return
		}
		logger.Debug("Shutdown completed")
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timed out", slog.Duration("timeout", h.timeout))
	}
}
