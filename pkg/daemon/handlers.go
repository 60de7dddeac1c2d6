package daemon

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bctrl/batteryd/pkg/config"
	"github.com/bctrl/batteryd/pkg/protocol"
	"github.com/bctrl/batteryd/pkg/sysfs"
)

// Applier validates a threshold and commits it to the hardware control
// file and the config file. It is the only writer of either.
type Applier struct {
	control sysfs.Control
	conf    config.Config
	mu      *sync.Mutex
}

// NewApplier returns an Applier writing through control and conf.
func NewApplier(control sysfs.Control, conf config.Config) *Applier {
	return &Applier{
		control: control,
		conf:    conf,
		mu:      &sync.Mutex{},
	}
}

// Apply validates v and, if it is in range, writes it to the control file
// and then persists it. Neither file is touched when validation fails.
// Every write failure collapses into StatusSystemFailure; the cause is
// only logged.
func (a *Applier) Apply(v int) protocol.Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.apply(v)
}

// apply does the work of Apply. a.mu must be held.
func (a *Applier) apply(v int) protocol.Status {
	if status := protocol.Check(v); status != protocol.StatusSuccess {
		logrus.WithFields(logrus.Fields{
			"threshold": v,
			"status":    status,
		}).Warn("rejected threshold")
		return status
	}

	path, err := a.control.Write(v)
	if err != nil {
		logrus.Errorf("failed to set charge threshold to %d: %v", v, err)
		return protocol.StatusSystemFailure
	}

	a.conf.SetThreshold(v)
	if err := a.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		return protocol.StatusSystemFailure
	}

	logrus.WithField("control", path).Infof("set charge threshold to %d", v)

	return protocol.StatusSuccess
}
