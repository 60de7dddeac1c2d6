package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bctrl/batteryd/pkg/daemon"
	"github.com/bctrl/batteryd/pkg/version"
)

// NewCommand .
func NewCommand() *cobra.Command {
	opts := daemon.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "batteryd",
		Short: "batteryd applies battery charge-stop thresholds on behalf of unprivileged users",
		Long: `batteryd applies battery charge-stop thresholds on behalf of unprivileged users.

It must run as root. On start it restores the last threshold it applied,
then serves one request at a time on a unix socket that only the socket
group may use. SIGINT and SIGTERM remove the socket and exit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("batteryd starting")

			if os.Geteuid() != 0 {
				logrus.Warn("not running as root, writes to sysfs will likely fail")
			}

			// Handle common process-killing signals, so we can gracefully shut down:
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return daemon.Run(ctx, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	f.StringVar(&opts.SocketPath, "daemon-socket", opts.SocketPath, "unix socket path")
	f.StringVar(&opts.SocketGroup, "socket-group", opts.SocketGroup, "group allowed to use the socket (empty keeps the daemon's group)")
	f.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "file holding the last applied threshold")
	f.StringVar(&opts.ControlGlob, "control-glob", opts.ControlGlob, "glob matching the charge_control_end_threshold file")
	f.DurationVar(&opts.Cooldown, "cooldown", opts.Cooldown, "pause after every request")
	f.BoolVar(&opts.ReapplyOnResume, "reapply-on-resume", opts.ReapplyOnResume, "re-apply the threshold when logind reports a resume")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	})

	return cmd
}
