package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"go-hrdash/internal/export"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ExportCmd returns the export command
func ExportCmd(open Opener, now func() time.Time) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export employees|schedules",
		Short:     "Write employees or promotion schedules to an xlsx file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"employees", "schedules"},
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := open()
			if err != nil {
				return err
			}
			defer backend.Close()

			path := out
			if path == "" {
				path = args[0] + ".xlsx"
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}

			rows, err := writeExport(cmd, backend, args[0], f, now())
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(path)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %d %s to %s\n",
				color.New(color.FgGreen).Sprint("✓"), rows, args[0], path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <kind>.xlsx)")
	return cmd
}

func writeExport(cmd *cobra.Command, backend *Backend, kind string, w io.Writer, now time.Time) (int, error) {
	ctx := cmd.Context()

	switch kind {
	case "employees":
		rows, err := backend.Services.Employee.GetAll(ctx)
		if err != nil {
			return 0, err
		}
		return len(rows), export.Employees(w, rows)
	case "schedules":
		rows, err := backend.Services.PromotionSchedule.ListAll(ctx)
		if err != nil {
			return 0, err
		}
		return len(rows), export.PromotionSchedules(w, rows, now)
	}
	return 0, fmt.Errorf("unknown export %q", kind)
}
