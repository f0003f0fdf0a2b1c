// Package toolexec drives the lifecycle of a command-line tool: it builds the
// tool from its parsed command descriptor, executes it and guarantees that the
// tool's shutdown hook runs exactly once afterwards.
package toolexec

import (
	"context"
	"errors"
	"log/slog"

	"github.com/acronis/go-stacktrace"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/qbicsoftware/sample-service/internal/pkg/command"
	"github.com/qbicsoftware/sample-service/internal/pkg/ctxlog"
)

var ErrNilTool = errors.New("factory returned nil tool")

// Descriptor holds the command-line options of a tool.
type Descriptor interface {
	Name() string
	Description() string
	BindFlags(fs *pflag.FlagSet)
}

// Tool is the unit implementing the actual behavior of a command-line tool.
//
// Shutdown is invoked once after Execute returns, also when Execute failed or
// the context was cancelled. It must not terminate the process.
type Tool interface {
	command.Command
	Shutdown(ctx context.Context) error
}

// Prober is implemented by tools that report liveness.
type Prober interface {
	IsAlive() bool
	IsDead() bool
}

// Factory builds a tool from its parsed descriptor.
type Factory[D Descriptor] func(desc D) (Tool, error)

// Invoke constructs the tool described by desc and runs its lifecycle.
// Failures are returned as *stacktrace.StackTrace; the original error is kept
// in its Err field.
func Invoke[D Descriptor](ctx context.Context, desc D, factory Factory[D], opts ...Option) error {
	o := makeOptions(opts...)

	logger := o.logger.With(
		slog.String("tool", desc.Name()),
		slog.String("run_id", uuid.NewString()))
	ctx = ctxlog.WithLogger(ctx, logger)

	logger.Debug("Starting tool")

	tool, err := factory(desc)
	if err != nil {
		return stacktrace.NewWrapped("construct tool", err, stacktrace.WithInfo("tool", desc.Name()))
	}
	if tool == nil {
		return stacktrace.NewWrapped("construct tool", ErrNilTool, stacktrace.WithInfo("tool", desc.Name()))
	}

	hook := NewShutdownHook(tool, o.shutdownTimeout)
	defer hook.Run(ctx)

	if err := tool.Execute(ctx); err != nil {
		return stacktrace.NewWrapped("execute tool", err, stacktrace.WithInfo("tool", desc.Name()))
	}

	if p, ok := tool.(Prober); ok {
		logger.Debug("Tool finished", slog.Bool("alive", p.IsAlive()), slog.Bool("dead", p.IsDead()))
	} else {
		logger.Debug("Tool finished")
	}
	return nil
}
