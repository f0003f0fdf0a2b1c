package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/acronis/go-stacktrace"
	slogex "github.com/acronis/go-stacktrace/slogex"
	"github.com/dusted-go/logging/prettylog"
	"github.com/mattn/go-isatty"
	slogformatter "github.com/samber/slog-formatter"
	"github.com/spf13/cobra"

	"github.com/qbicsoftware/sample-service/internal/app/command"
	"github.com/qbicsoftware/sample-service/internal/app/commands/samplecmd"
	"github.com/qbicsoftware/sample-service/internal/pkg/version"
)

func initLogging(w *os.File, verbose bool) {
	logLvl := func() slog.Level {
		if verbose {
			return slog.LevelDebug
		}
		return slog.LevelInfo
	}()

	logger := slog.New(
		slogformatter.NewFormatterHandler(
			slogformatter.FormatByType(func(s []string) slog.Value {
				return slog.StringValue(strings.Join(s, ","))
			}),
			slogformatter.FormatByType(func(d time.Duration) slog.Value {
				return slog.StringValue(d.String())
			}),
		)(
			prettylog.New(&slog.HandlerOptions{Level: logLvl},
				prettylog.WithDestinationWriter(w),
				func() prettylog.Option {
					if isatty.IsTerminal(w.Fd()) {
						return prettylog.WithColor()
					}
					return func(_ *prettylog.Handler) {}
				}(),
			),
		),
	)
	slog.SetDefault(logger)
}

const (
	ensureDuplicatesFlag = "ensure-duplicates"
)

func main() {
	os.Exit(mainFn(os.Args[1:]))
}

func mainFn(args []string) int {
	var ensureDuplicates bool
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// settings may fail to load; report that in the tool's log format too
	initLogging(os.Stderr, false)

	rootCmd := func() *cobra.Command {
		cmd := samplecmd.New()
		cmd.Version = version.String()
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cmd.CompletionOptions = cobra.CompletionOptions{
			DisableDefaultCmd: true,
		}
		cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
			settings, err := command.LoadSettings(cmd)
			if err != nil {
				return command.WrapErrorMsg(err, "load settings")
			}

			initLogging(os.Stderr, settings.Verbose)
			cmd.SetContext(command.WithSettings(cmd.Context(), settings))
			return nil
		}

		command.AddWorkDirFlag(cmd)
		command.AddSettingsFlags(cmd)
		cmd.Flags().BoolVarP(&ensureDuplicates, ensureDuplicatesFlag, "d", false, "ensure that there are no duplicates in tracebacks")

		return cmd
	}()
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var cmdErr *command.Error
		if errors.As(err, &cmdErr) && cmdErr.Inner != nil {
			stOpts := func() []stacktrace.TracesOpt {
				if ensureDuplicates {
					return []stacktrace.TracesOpt{stacktrace.WithEnsureDuplicates()}
				}
				return []stacktrace.TracesOpt{}
			}()

			slog.Error("Command failed", slog.String("reason", cmdErr.Msg), slogex.ErrToSlogAttr(cmdErr.Inner, stOpts...))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			_ = rootCmd.Usage()
		}
		return 1
	}

	return 0
}
