package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/pantry/internal/output"
)

func newSystemCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Show server information",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show Grocy, PHP and SQLite versions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				info, err := o.grocy.SystemInfo(cmd.Context())
				if err != nil {
					return err
				}
				return o.printer.Print(output.SystemInfo(info))
			},
		},
		&cobra.Command{
			Use:   "time",
			Short: "Show the server clock and time zone",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, err := o.grocy.SystemTime(cmd.Context())
				if err != nil {
					return err
				}
				return o.printer.Print(output.SystemTime(st))
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Show server settings and enabled features",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := o.grocy.SystemConfig(cmd.Context())
				if err != nil {
					return err
				}
				return o.printer.Print(output.SystemConfig(cfg))
			},
		},
		&cobra.Command{
			Use:   "changed",
			Short: "Show when the database last changed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				changed, err := o.grocy.LastDBChanged(cmd.Context())
				if err != nil {
					return err
				}
				return o.printer.Print(output.DBChanged(changed))
			},
		},
	)
	return cmd
}
