package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/acronis/go-stacktrace"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/qbicsoftware/sample-service/internal/pkg/toolexec"
)

const (
	configFlag          = "config"
	verboseFlag         = "verbose"
	shutdownTimeoutFlag = "shutdown-timeout"

	DefaultConfigFile = ".sample.yaml"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings configure the tool itself rather than the command it runs.
// Flags take precedence over the settings file, which takes precedence over
// the defaults.
type Settings struct {
	Verbose         bool          `yaml:"verbose"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func DefaultSettings() Settings {
	return Settings{
		ShutdownTimeout: toolexec.DefaultShutdownTimeout,
	}
}

func (s Settings) Validate() error {
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive, got %s", ErrInvalidSettings, s.ShutdownTimeout)
	}
	return nil
}

func AddSettingsFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP(configFlag, "c", "", "settings file (default <working-dir>/"+DefaultConfigFile+")")
	flags.BoolP(verboseFlag, "v", false, "verbose output")
	flags.Duration(shutdownTimeoutFlag, toolexec.DefaultShutdownTimeout, "maximum time to wait for the shutdown hook")
}

func LoadSettings(cmd *cobra.Command) (Settings, error) {
	s := DefaultSettings()
	if err := s.loadFile(cmd); err != nil {
		return Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed(verboseFlag) {
		verbose, err := flags.GetBool(verboseFlag)
		if err != nil {
			return Settings{}, fmt.Errorf("get verbose flag: %w", err)
		}
		s.Verbose = verbose
	}
	if flags.Changed(shutdownTimeoutFlag) {
		timeout, err := flags.GetDuration(shutdownTimeoutFlag)
		if err != nil {
			return Settings{}, fmt.Errorf("get shutdown-timeout flag: %w", err)
		}
		s.ShutdownTimeout = timeout
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) loadFile(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if path, err = ResolvePath(cmd, path); err != nil {
		return fmt.Errorf("resolve settings file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read settings file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return stacktrace.NewWrapped("decode settings file", err, stacktrace.WithInfo("path", path))
	}
	return nil
}

type settingsKey struct{}

func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// SettingsFromContext returns the settings stored by WithSettings, or the defaults.
func SettingsFromContext(ctx context.Context) Settings {
	if s, ok := ctx.Value(settingsKey{}).(Settings); ok {
		return s
	}
	return DefaultSettings()
}
