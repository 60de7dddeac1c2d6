package daemon

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bctrl/batteryd/pkg/protocol"
)

// logRequest logs one serviced request at a level matching its status.
func logRequest(logger logrus.FieldLogger, threshold protocol.Threshold, status protocol.Status, start time.Time) {
	stop := time.Since(start)
	latency := int(math.Ceil(float64(stop.Nanoseconds()) / 1000000.0))

	entry := logger.WithFields(logrus.Fields{
		"threshold": threshold,
		"status":    status.String(),
		"latency":   latency, // time to process
	})

	switch status {
	case protocol.StatusSuccess:
		entry.Debugf("set %d: %s (%dms)", threshold, status, latency)
	case protocol.StatusSystemFailure:
		entry.Errorf("set %d: %s (%dms)", threshold, status, latency)
	default:
		entry.Warnf("set %d: %s (%dms)", threshold, status, latency)
	}
}
