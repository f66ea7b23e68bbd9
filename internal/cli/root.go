package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// RootCmd assembles hrctl.
func RootCmd(open Opener, now func() time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:           "hrctl",
		Short:         "Operator tooling for the HR dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(MigrateCmd(open))
	root.AddCommand(UpcomingCmd(open, now))
	root.AddCommand(ExportCmd(open, now))
	return root
}
