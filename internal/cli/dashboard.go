package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/pantry/internal/app"
	"github.com/five82/pantry/internal/output"
)

func newDashboardCmd(o *rootOptions) *cobra.Command {
	var (
		poll      time.Duration
		prefsPath string
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run the live terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.printer.Format() != output.FormatTable {
				return fmt.Errorf("dashboard does not support --output %s", o.printer.Format())
			}
			return app.Run(cmd.Context(), app.Options{
				Grocy:     o.grocy,
				Logger:    o.logger,
				LogFile:   o.cfg.LogFile,
				PrefsPath: prefsPath,
				PollEvery: poll,
			})
		},
	}
	cmd.Flags().DurationVar(&poll, "poll", 0, "Refresh interval (default 5s)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Path to the preferences file (default ~/.config/pantry/prefs.toml)")
	return cmd
}
