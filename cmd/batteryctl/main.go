package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bctrl/batteryd/pkg/client"
	"github.com/bctrl/batteryd/pkg/protocol"
	"github.com/bctrl/batteryd/pkg/sysfs"
)

var (
	logLevel       = "info"
	unixSocketPath = protocol.DefaultSocketPath
	controlGlob    = sysfs.DefaultGlob
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

// handleCmdError prints err and returns the process exit code.
func handleCmdError(stderr io.Writer, err error) int {
	var se *statusError
	switch {
	case errors.As(err, &se):
		fmt.Fprintln(stderr, red(se.message))
		return se.code
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintf(stderr, "Failed to connect to batteryd service: %v\n", err)
		fmt.Fprintln(stderr, "Is the daemon running? Try 'systemctl status batteryd'.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintf(stderr, "Failed to connect to batteryd service: %v\n", err)
		if group := socketGroup(unixSocketPath); group != "" {
			fmt.Fprintf(stderr, "Only members of the %q group may change the threshold.\n", group)
		} else {
			fmt.Fprintln(stderr, "Only members of the socket's group may change the threshold.")
		}
	case errors.Is(err, client.ErrConnectFailed):
		fmt.Fprintf(stderr, "Failed to connect to batteryd service: %v\n", err)
	case errors.Is(err, sysfs.ErrNoControl):
		fmt.Fprintln(stderr, "No battery charge control found")
	case errors.Is(err, client.ErrInputTooLong):
		fmt.Fprintln(stderr, "Please input up to 3 digits")
	case errors.Is(err, client.ErrInvalidThreshold):
		fmt.Fprintln(stderr, "Not a valid battery threshold")
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		return handleCmdError(stderr, err)
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func NewCommand() *cobra.Command {
	var (
		setValue string
		get      bool
	)

	cmd := &cobra.Command{
		Use:   "batteryctl (-s <value> | -g | -h)",
		Short: "batteryctl sets the battery charge-stop threshold through batteryd",
		Long: `batteryctl sets the battery charge-stop threshold through batteryd.

Setting a threshold asks the batteryd service to write it to the kernel and
remember it across reboots. The service accepts values from 50 to 100.
Reading the current threshold needs no service and no privilege.

Exit status mirrors the service answer: 0 success, 1 value too small,
2 value too large, 3 service failure. Usage and connection errors exit 1.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := cmd.Flags().Changed("set")
			if set == get {
				cmd.PrintErrln(cmd.UsageString())
				return errors.New("exactly one of -s, -g or -h must be given")
			}
			if get {
				return getThreshold(cmd)
			}
			return setThreshold(cmd, setValue)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&setValue, "set", "s", "", "set the charge-stop threshold (50-100)")
	f.BoolVarP(&get, "get", "g", false, "print the current charge-stop threshold")

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "batteryd unix socket path")
	globalFlags.StringVar(&controlGlob, "control-glob", controlGlob, "glob matching the charge_control_end_threshold file")

	cmd.AddCommand(NewVersionCommand())

	return cmd
}
