package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamed0406/opscheck/internal/app"
	"github.com/hamed0406/opscheck/internal/check"
	"github.com/hamed0406/opscheck/internal/domain"
	"github.com/hamed0406/opscheck/internal/probe"
	"github.com/hamed0406/opscheck/internal/resolver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dnscheck:", err)
		os.Exit(app.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "dnscheck <host1,host2,...>",
		Short: "Verify that DNS names resolve from this node",
		Long: `dnscheck resolves every name of the comma separated list in order. A
name that keeps failing with no answer, a timeout or no usable nameserver
after three retries is escalated through Opsgenie and Mailgun.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := domain.ParseDNSTargets(args[0])
			if len(targets) == 0 {
				return fmt.Errorf("no hostnames in %q", args[0])
			}

			env, err := app.Setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				env.Config.RunTimeout = timeout
			}

			return env.Run(cmd.Context(), "opscheck_dns", func(ctx context.Context) (check.Report, error) {
				res, err := resolver.New(env.Config.DNSServers, env.Config.DNSTimeout, env.Config.DNSLifetime)
				if err != nil {
					return check.Report{}, err
				}
				d := &check.DNS{
					Logger:    env.Logger,
					Retrier:   probe.NewRetrier(res, env.Config.DNSRetryInterval, env.Logger),
					Escalator: env.Escalator,
					Alert:     env.Alert,
					Metrics:   env.Metrics,
					NodeIP:    env.Config.NodeIP,
				}
				return d.Run(ctx, targets)
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall deadline for the run, overrides RUN_TIMEOUT (0 disables)")
	return cmd
}
