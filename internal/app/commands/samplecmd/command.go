package samplecmd

import (
	"github.com/spf13/cobra"

	"github.com/qbicsoftware/sample-service/internal/app/command"
	"github.com/qbicsoftware/sample-service/internal/app/sample"
	"github.com/qbicsoftware/sample-service/internal/pkg/toolexec"
)

// New returns the cobra command running the Sample tool. Settings are taken
// from the command context, see command.WithSettings.
func New() *cobra.Command {
	desc := sample.NewCommand()

	cmd := &cobra.Command{
		Use:   desc.Name(),
		Short: desc.Description(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			settings := command.SettingsFromContext(ctx)

			return command.WrapError(toolexec.Invoke(ctx, desc, sample.NewTool,
				toolexec.WithShutdownTimeout(settings.ShutdownTimeout)))
		},
	}
	desc.BindFlags(cmd.Flags())

	return cmd
}
