package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shodan-inspector/internal/config"
	"shodan-inspector/internal/logger"
	"shodan-inspector/internal/relay"
	"shodan-inspector/internal/shodan"
)

var (
	cfg *config.Config

	upstreamBase string
	timeout      time.Duration
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inspector",
		Short:         "Shodan IP Inspector: look up a host through the Shodan API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv()
			l := logger.Setup()
			c, err := config.Load()
			if err != nil {
				l.Error("config_error", "err", err)
				return err
			}
			if cmd.Flags().Changed("upstream") {
				c.UpstreamBase = upstreamBase
			}
			if cmd.Flags().Changed("timeout") {
				c.UpstreamTimeout = timeout
			}
			cfg = c
			l.Debug("config_loaded", "upstream", c.UpstreamBase, "timeout", c.UpstreamTimeout.String())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&upstreamBase, "upstream", shodan.DefaultBase, "Shodan API base URL (env SHODAN_API_BASE)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", shodan.DefaultTimeout, "upstream request timeout (env UPSTREAM_TIMEOUT)")

	root.AddCommand(serveCmd(), queryCmd(), versionCmd())
	return root
}

// newRelay builds a relay from the loaded configuration.
func newRelay() *relay.Relay {
	return relay.New(shodan.New(cfg.UpstreamBase, cfg.UpstreamTimeout, nil))
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		return err
	}
	return nil
}
