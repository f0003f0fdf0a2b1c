package testsupp

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dusted-go/logging/prettylog"
	slogformatter "github.com/samber/slog-formatter"
)

// InitLog routes the default logger to stdout at debug level for the duration of the test.
func InitLog(t *testing.T) {
	t.Helper()
	setDefault(t, os.Stdout)
}

// CaptureLog routes the default logger into the returned buffer for the
// duration of the test.
func CaptureLog(t *testing.T) *LogBuffer {
	t.Helper()
	buf := &LogBuffer{}
	setDefault(t, buf)
	return buf
}

// LogBuffer is a bytes.Buffer safe for concurrent writers.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func setDefault(t *testing.T, w io.Writer) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	formatHandler := slogformatter.NewFormatterHandler(
		slogformatter.FormatByType(func(s []string) slog.Value {
			return slog.StringValue(strings.Join(s, ","))
		}),
		slogformatter.FormatByType(func(d time.Duration) slog.Value {
			return slog.StringValue(d.String())
		}),
	)

	plHandler := prettylog.New(
		&slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: false,
		},
		prettylog.WithDestinationWriter(w),
	)

	slog.SetDefault(slog.New(formatHandler(plHandler)))
}
