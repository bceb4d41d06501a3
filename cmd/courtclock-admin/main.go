// Command courtclock-admin runs migrations, seeds holidays and calculates deadlines offline
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"courtclock/internal/platform/config"
	"courtclock/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd(config.New()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree over cfg so tests can run it in process
func newRootCmd(cfg config.Conf) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "courtclock-admin",
		Short:         "Administer the courtclock deadline service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opt := logger.FromEnv()
			opt.Component = "admin"
			if logLevel != "" {
				opt.Level = logLevel
			}
			logger.Init(opt)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); default from LOG_LEVEL")

	root.AddCommand(newMigrateCmd(cfg), newHolidaysCmd(cfg), newCalcCmd(cfg))
	return root
}
