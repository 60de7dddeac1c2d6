package daemon

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"vawter.tech/stopper"

	"github.com/bctrl/batteryd/pkg/config"
	"github.com/bctrl/batteryd/pkg/protocol"
	"github.com/bctrl/batteryd/pkg/sysfs"
)

const (
	shutdownGrace   = 100 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// Options configures Run.
type Options struct {
	SocketPath      string
	SocketGroup     string
	ConfigPath      string
	ControlGlob     string
	Cooldown        time.Duration
	ReapplyOnResume bool

	// ready, if set, is called once the socket is accepting connections.
	ready func(*Server)
}

func DefaultOptions() Options {
	return Options{
		SocketPath:      protocol.DefaultSocketPath,
		SocketGroup:     protocol.DefaultSocketGroup,
		ConfigPath:      config.DefaultPath,
		ControlGlob:     sysfs.DefaultGlob,
		Cooldown:        DefaultCooldown,
		ReapplyOnResume: true,
	}
}

// Run restores the persisted threshold, then serves requests until ctx is
// cancelled. The socket path is unlinked on every return path after it
// has been bound.
func Run(ctx context.Context, opts Options) error {
	conf := config.NewFile(opts.ConfigPath)
	control := sysfs.NewFile(opts.ControlGlob)
	applier := NewApplier(control, conf)

	if err := Restore(applier); err != nil {
		return err
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	ln, err := Listen(opts.SocketPath, opts.SocketGroup)
	if err != nil {
		return err
	}
	defer removeSocket(opts.SocketPath)

	srv := NewServer(ln, applier, opts.Cooldown)
	defer func() {
		_ = srv.Close()
	}()

	sctx := stopper.WithContext(context.Background())

	sctx.Go(func(sctx *stopper.Context) error {
		return srv.Serve(sctx)
	})

	// Unblock Accept and any stuck read once shutdown begins.
	sctx.Go(func(sctx *stopper.Context) error {
		<-sctx.Stopping()
		logrus.Info("closing listener")
		return srv.Close()
	})

	if opts.ReapplyOnResume {
		w, err := WatchResume(applier)
		if err != nil {
			logrus.Warnf("resume re-apply disabled: %v", err)
		} else {
			sctx.Defer(func() {
				if err := w.Close(); err != nil {
					logrus.Errorf("failed to close system bus connection: %v", err)
				}
			})
			sctx.Go(w.Run)
		}
	}

	if opts.ready != nil {
		opts.ready(srv)
	}

	<-ctx.Done()
	logrus.Info("shutting down")
	sctx.Stop(shutdownGrace)

	done := make(chan error, 1)
	go func() {
		done <- sctx.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logrus.Errorf("error during shutdown: %v", err)
		}
	case <-time.After(shutdownTimeout):
		logrus.Warn("request still in flight, exiting without it")
	}

	logrus.Info("exiting")
	return nil
}
