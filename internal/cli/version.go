package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/gapp/internal/ir"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the GAPP IR version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if f.JSON() {
				return f.Success(map[string]string{"gapp_version": ir.Version})
			}
			return f.Success("gappc " + ir.Version)
		},
	}
}
