package toolexec

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acronis/go-stacktrace"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/qbicsoftware/sample-service/internal/pkg/ctxlog"
	"github.com/qbicsoftware/sample-service/pkg/testsupp"
)

type mockDescriptor struct{}

func (d *mockDescriptor) Name() string               { return "Mock" }
func (d *mockDescriptor) Description() string        { return "mock tool" }
func (d *mockDescriptor) BindFlags(_ *pflag.FlagSet) {}

type mockTool struct {
	executeErr  error
	shutdownErr error
	panicOn     bool
	block       chan struct{}

	executed  atomic.Int32
	shutdowns atomic.Int32
	sawLogger atomic.Bool

	shutdownCtxErr      error
	shutdownHasDeadline bool
}

func (m *mockTool) Execute(ctx context.Context) error {
	m.executed.Add(1)
	m.sawLogger.Store(ctxlog.FromContext(ctx) != slog.Default())
	return m.executeErr
}

func (m *mockTool) Shutdown(ctx context.Context) error {
	m.shutdowns.Add(1)
	m.shutdownCtxErr = ctx.Err()
	_, m.shutdownHasDeadline = ctx.Deadline()
	if m.panicOn {
		panic("cleanup exploded")
	}
	if m.block != nil {
		<-m.block
	}
	return m.shutdownErr
}

func (m *mockTool) IsAlive() bool { return true }
func (m *mockTool) IsDead() bool  { return false }

func requireTrace(t *testing.T, err, cause error) {
	t.Helper()

	st, ok := stacktrace.Unwrap(err)
	require.True(t, ok, "expected stacktrace, got %v", err)
	require.ErrorIs(t, st.Err, cause)
	require.Equal(t, "Mock", st.Info.StringBy("tool"))
}

func factoryFor(tool *mockTool) Factory[*mockDescriptor] {
	return func(_ *mockDescriptor) (Tool, error) { return tool, nil }
}

func Test_Invoke(t *testing.T) {
	type testcase struct {
		tool            *mockTool
		expectErr       error
		expectShutdowns int32
	}

	executeErr := errors.New("execute failed")

	testcases := map[string]testcase{
		"success": {
			tool:            &mockTool{},
			expectShutdowns: 1,
		},
		"execute error still shuts down": {
			tool:            &mockTool{executeErr: executeErr},
			expectErr:       executeErr,
			expectShutdowns: 1,
		},
		"shutdown error is swallowed": {
			tool:            &mockTool{shutdownErr: errors.New("cleanup failed")},
			expectShutdowns: 1,
		},
		"shutdown panic is recovered": {
			tool:            &mockTool{panicOn: true},
			expectShutdowns: 1,
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			testsupp.CaptureLog(t)

			err := Invoke(context.Background(), &mockDescriptor{}, factoryFor(tc.tool))
			if tc.expectErr != nil {
				requireTrace(t, err, tc.expectErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, int32(1), tc.tool.executed.Load())
			require.Equal(t, tc.expectShutdowns, tc.tool.shutdowns.Load())
			require.True(t, tc.tool.sawLogger.Load())
		})
	}
}

func Test_InvokeFactoryFailure(t *testing.T) {
	testsupp.CaptureLog(t)

	factoryErr := errors.New("bad options")
	err := Invoke(context.Background(), &mockDescriptor{}, func(_ *mockDescriptor) (Tool, error) {
		return nil, factoryErr
	})
	requireTrace(t, err, factoryErr)

	err = Invoke(context.Background(), &mockDescriptor{}, func(_ *mockDescriptor) (Tool, error) {
		return nil, nil
	})
	requireTrace(t, err, ErrNilTool)
}

func Test_InvokeShutdownTimeout(t *testing.T) {
	logs := testsupp.CaptureLog(t)

	tool := &mockTool{block: make(chan struct{})}
	defer close(tool.block)

	start := time.Now()
	err := Invoke(context.Background(), &mockDescriptor{}, factoryFor(tool),
		WithShutdownTimeout(50*time.Millisecond))
	require.NoError(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Contains(t, logs.String(), "Shutdown timed out")
}

func Test_InvokeCancelledContext(t *testing.T) {
	testsupp.CaptureLog(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tool := &mockTool{}
	require.NoError(t, Invoke(ctx, &mockDescriptor{}, factoryFor(tool)))
	require.Equal(t, int32(1), tool.shutdowns.Load())
	require.NoError(t, tool.shutdownCtxErr)
	require.True(t, tool.shutdownHasDeadline)
}

func Test_ShutdownHookRunsOnce(t *testing.T) {
	testsupp.CaptureLog(t)

	tool := &mockTool{}
	hook := NewShutdownHook(tool, 0)

	done := make(chan struct{})
	for range 8 {
		go func() {
			hook.Run(context.Background())
			done <- struct{}{}
		}()
	}
	for range 8 {
		<-done
	}
	require.Equal(t, int32(1), tool.shutdowns.Load())
}

func Test_Options(t *testing.T) {
	o := makeOptions(WithShutdownTimeout(-1), WithLogger(nil))
	require.Equal(t, DefaultShutdownTimeout, o.shutdownTimeout)
	require.NotNil(t, o.logger)

	o = makeOptions(WithShutdownTimeout(time.Second))
	require.Equal(t, time.Second, o.shutdownTimeout)
}
