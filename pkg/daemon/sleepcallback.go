package daemon

import (
	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"vawter.tech/stopper"
)

const (
	login1Interface     = "org.freedesktop.login1.Manager"
	login1Path          = dbus.ObjectPath("/org/freedesktop/login1")
	prepareForSleepName = login1Interface + ".PrepareForSleep"
)

// ResumeWatcher re-applies the persisted threshold after the system wakes
// up. Some firmware resets charge_control_end_threshold across suspend.
type ResumeWatcher struct {
	applier *Applier
	conn    *dbus.Conn
	signals chan *dbus.Signal
}

// WatchResume subscribes to logind's PrepareForSleep signal on the system bus.
func WatchResume(applier *Applier) (*ResumeWatcher, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connect system bus")
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(login1Path),
		dbus.WithMatchInterface(login1Interface),
		dbus.WithMatchMember("PrepareForSleep"),
	)
	if err != nil {
		_ = conn.Close()
		return nil, pkgerrors.Wrap(err, "subscribe to PrepareForSleep")
	}

	w := &ResumeWatcher{
		applier: applier,
		conn:    conn,
		signals: make(chan *dbus.Signal, 10),
	}
	conn.Signal(w.signals)

	return w, nil
}

// Run handles signals until sctx starts stopping.
func (w *ResumeWatcher) Run(sctx *stopper.Context) error {
	logrus.Debug("watching for system resume")
	for {
		select {
		case <-sctx.Stopping():
			return nil
		case sig, ok := <-w.signals:
			if !ok {
				return nil
			}
			w.handle(sig)
		}
	}
}

func (w *ResumeWatcher) Close() error {
	return w.conn.Close()
}

// handle re-applies on PrepareForSleep(false), which logind emits after
// resume. PrepareForSleep(true) is emitted before sleep and ignored.
func (w *ResumeWatcher) handle(sig *dbus.Signal) {
	if sig == nil || sig.Name != prepareForSleepName || len(sig.Body) < 1 {
		return
	}

	sleeping, ok := sig.Body[0].(bool)
	if !ok {
		return
	}
	if sleeping {
		logrus.Debug("system is going to sleep")
		return
	}

	logrus.Info("system resumed, re-applying persisted threshold")
	if err := Restore(w.applier); err != nil {
		logrus.Errorf("failed to re-apply threshold after resume: %v", err)
	}
}
