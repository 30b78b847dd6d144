package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/opscheck/internal/app"
	"github.com/hamed0406/opscheck/internal/check"
	"github.com/hamed0406/opscheck/internal/domain"
	"github.com/hamed0406/opscheck/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "backupcheck:", err)
		os.Exit(app.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "backupcheck <postgres|cassandra>",
		Short: "Verify that database snapshots in object storage are refreshed on schedule",
		Long: `backupcheck lists every object under the snapshot prefix of the given
database and escalates through Opsgenie and Mailgun when the newest one is
older than the allowed interval. Any argument other than "postgres" checks
the cassandra snapshots.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				env.Config.RunTimeout = timeout
			}

			kind := domain.ParseDBKind(args[0])
			env.Logger.Info("backup_process_starting", zap.String("kind", string(kind)))

			return env.Run(cmd.Context(), "opscheck_backup_"+string(kind), func(ctx context.Context) (check.Report, error) {
				lister, err := storage.New(ctx, env.Config)
				if err != nil {
					return check.Report{}, err
				}
				b := &check.Backup{
					Logger:    env.Logger,
					Lister:    lister,
					Escalator: env.Escalator,
					Alert:     env.Alert,
					Metrics:   env.Metrics,
				}
				return b.Run(ctx, env.Config.BackupTarget(kind))
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall deadline for the run, overrides RUN_TIMEOUT (0 disables)")
	return cmd
}
