package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bctrl/batteryd/pkg/client"
	"github.com/bctrl/batteryd/pkg/powerinfo"
	"github.com/bctrl/batteryd/pkg/protocol"
	"github.com/bctrl/batteryd/pkg/sysfs"
	"github.com/bctrl/batteryd/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

const unexpectedResponse = "Unexpected response, please check batteryd service for malfunction."

var statusMessages = map[protocol.Status]string{
	protocol.StatusValueTooSmall: "Failed to set threshold: value too small, try value > 49",
	protocol.StatusValueTooLarge: "Failed to set threshold: value too large, try value <= 100",
	protocol.StatusSystemFailure: "Something went wrong with the service, check batteryd's logs",
}

func setThreshold(cmd *cobra.Command, value string) error {
	threshold, err := client.ParseThreshold(value)
	if err != nil {
		return err
	}

	status, err := client.NewClient(unixSocketPath).SetThreshold(threshold)
	switch {
	case errors.Is(err, client.ErrNoResponse):
		logrus.Debugf("bad answer from daemon: %v", err)
		return &statusError{code: 1, message: unexpectedResponse}
	case errors.Is(err, protocol.ErrInvalidStatus):
		logrus.Debugf("bad answer from daemon: %v", err)
		return &statusError{code: status.ExitCode(), message: unexpectedResponse}
	case err != nil:
		return err
	}

	if status != protocol.StatusSuccess {
		return &statusError{code: status.ExitCode(), message: statusMessages[status]}
	}

	cmd.Println(green(fmt.Sprintf("Battery charge threshold set to %d", threshold)))
	return nil
}

func getThreshold(cmd *cobra.Command) error {
	threshold, err := sysfs.NewFile(controlGlob).Read()
	if err != nil {
		return err
	}

	cmd.Printf("Current charge threshold: %s\n", bold("%d%%", threshold))

	bat, err := powerinfo.Get()
	if err != nil {
		logrus.Debugf("failed to get battery info: %v", err)
		return nil
	}
	cmd.Printf("Battery: %s (%s)\n", bold("%d%%", bat.Charge), bat.State)

	return nil
}
