package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/prajan97/diamond-intel"

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the diamond-intel version",
		Args:  cobra.NoArgs,
		// No config or logger needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "diamond-intel v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
