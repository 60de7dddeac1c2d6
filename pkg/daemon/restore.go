package daemon

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bctrl/batteryd/pkg/protocol"
)

// Restore replays the persisted threshold through the applier. A missing
// or unreadable config is not an error: the hardware keeps whatever value
// it has. An out-of-range value is healed to SafeDefaultThreshold. A
// write failure returns ErrControlUnwritable.
//
// The applier stays locked from reading the config to persisting the
// result, so a concurrent Apply is either fully before or fully after.
func Restore(a *Applier) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.conf.Load(); err != nil {
		if os.IsNotExist(err) {
			logrus.Info("no persisted threshold, leaving hardware value unchanged")
		} else {
			logrus.Warnf("failed to load persisted threshold, leaving hardware value unchanged: %v", err)
		}
		return nil
	}

	v, ok := a.conf.Threshold()
	if !ok {
		logrus.Info("persisted threshold is empty, leaving hardware value unchanged")
		return nil
	}

	status := a.apply(v)
	switch status {
	case protocol.StatusSuccess:
		logrus.Infof("restored charge threshold %d", v)
		return nil
	case protocol.StatusValueTooSmall, protocol.StatusValueTooLarge:
		logrus.Warnf("persisted threshold %d is out of range, resetting to %d", v, protocol.SafeDefaultThreshold)
		status = a.apply(protocol.SafeDefaultThreshold)
		if status == protocol.StatusSuccess {
			return nil
		}
	}

	return pkgerrors.Wrapf(ErrControlUnwritable, "restoring threshold %d: %s", v, status)
}
