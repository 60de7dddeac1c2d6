package client

import (
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/bctrl/batteryd/pkg/protocol"
)

// ParseThreshold performs the client-side sanity check on user input: at
// most three characters, parsing to 1..100. The daemon checks the range
// again and applies its own lower bound.
func ParseThreshold(s string) (protocol.Threshold, error) {
	if len(s) > protocol.MaxInputLength {
		return 0, ErrInputTooLong
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrInvalidThreshold, "%q", s)
	}
	if v < 1 || v > protocol.MaxThreshold {
		return 0, pkgerrors.Wrapf(ErrInvalidThreshold, "%d", v)
	}

	return protocol.Threshold(v), nil
}
