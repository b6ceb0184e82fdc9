package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/config"
	"github.com/five82/pantry/internal/logging"
	"github.com/five82/pantry/internal/output"
)

// rootOptions holds the global flags and what setup builds from them.
type rootOptions struct {
	configPath string
	envFile    string
	output     string
	filters    []string

	cfg      config.Config
	logger   *zap.Logger
	closeLog func()
	grocy    *grocy.Grocy
	printer  *output.Printer
}

// Execute runs the pantry command line.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "pantry talks to a Grocy server from your terminal",
		Long: "pantry lists and books stock, chores, tasks, batteries, shopping lists and meal plans " +
			"on a Grocy server, and runs a live dashboard.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			opts.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config file (default ~/.config/pantry/config.toml)")
	flags.StringVar(&opts.envFile, "env-file", "", "Path to a .env file (default ./.env)")
	flags.StringVarP(&opts.output, "output", "o", string(output.FormatTable), "Output format: table, json or yaml")
	flags.StringArrayVar(&opts.filters, "filter", nil, "Grocy query filter such as name=Milk (repeatable)")

	cmd.AddCommand(newMasterDataCmds(opts)...)
	cmd.AddCommand(
		newStockCmd(opts),
		newProductCmd(opts),
		newChoresCmd(opts),
		newChoreCmd(opts),
		newTasksCmd(opts),
		newTaskCmd(opts),
		newBatteriesCmd(opts),
		newBatteryCmd(opts),
		newShoppingCmd(opts),
		newMealPlanCmd(opts),
		newRecipeCmd(opts),
		newUsersCmd(opts),
		newSystemCmd(opts),
		newGenericCmd(opts),
		newDashboardCmd(opts),
	)
	return cmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	format, err := output.ParseFormat(o.output)
	if err != nil {
		return err
	}
	o.printer = output.New(cmd.OutOrStdout(), format)

	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	o.cfg = cfg

	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	o.logger = logger
	o.closeLog = closeLog

	g, err := grocy.New(cfg.APIConfig(),
		grocy.WithLogger(logger.Named("grocy")),
		grocy.WithDueSoonDays(cfg.DueSoonDays),
	)
	if err != nil {
		return err
	}
	o.grocy = g
	logger.Debug("command started", zap.String("command", cmd.CommandPath()))
	return nil
}

func (o *rootOptions) close() {
	if o.closeLog != nil {
		o.closeLog()
		o.closeLog = nil
	}
}

func (o *rootOptions) apiFilters() api.Filters {
	if len(o.filters) == 0 {
		return nil
	}
	return api.Filters(o.filters)
}

func parseID(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return v, nil
}

// parseWhen reads an optional --at value. Empty means now, which the API
// layer encodes as the zero time.
func parseWhen(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at %q (expected YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}

func parseDate(flag, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", flag, value)
	}
	return &t, nil
}

// optionalInt returns nil unless the flag was set.
func optionalInt(cmd *cobra.Command, flag string, value int) *int {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func optionalFloat(cmd *cobra.Command, flag string, value float64) *float64 {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}
