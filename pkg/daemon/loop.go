package daemon

import (
	"errors"
	"net"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"vawter.tech/stopper"

	"github.com/bctrl/batteryd/pkg/protocol"
)

// DefaultCooldown is the pause after every connection.
const DefaultCooldown = 2 * time.Second

// TimeSeriesRecorder records the last N connection completion times.
type TimeSeriesRecorder struct {
	MaxRecordCount int
	Records        []time.Time
	mu             *sync.Mutex
}

// NewTimeSeriesRecorder returns a new TimeSeriesRecorder.
func NewTimeSeriesRecorder(maxRecordCount int) *TimeSeriesRecorder {
	return &TimeSeriesRecorder{
		MaxRecordCount: maxRecordCount,
		Records:        make([]time.Time, 0),
		mu:             &sync.Mutex{},
	}
}

// AddRecordNow adds a new record with the current time.
func (r *TimeSeriesRecorder) AddRecordNow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Records) >= r.MaxRecordCount {
		r.Records = r.Records[1:]
	}
	r.Records = append(r.Records, time.Now())
}

// GetRecords returns a copy of the records.
func (r *TimeSeriesRecorder) GetRecords() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]time.Time, len(r.Records))
	copy(records, r.Records)
	return records
}

// GetRecordsIn returns the number of records in the last duration.
func (r *TimeSeriesRecorder) GetRecordsIn(last time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for i := len(r.Records) - 1; i >= 0; i-- {
		if time.Since(r.Records[i]) > last {
			break
		}
		count++
	}
	return count
}

// Server accepts one connection at a time on a unix socket, applies the
// requested threshold, and pauses for the cooldown before the next accept.
type Server struct {
	ln       *net.UnixListener
	applier  *Applier
	cooldown time.Duration
	recorder *TimeSeriesRecorder

	mu     *sync.Mutex
	active net.Conn
}

// NewServer returns a Server for an already bound listener.
func NewServer(ln *net.UnixListener, applier *Applier, cooldown time.Duration) *Server {
	return &Server{
		ln:       ln,
		applier:  applier,
		cooldown: cooldown,
		recorder: NewTimeSeriesRecorder(60),
		mu:       &sync.Mutex{},
	}
}

// Addr returns the listening address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Recorder returns the completion times of recent connections.
func (s *Server) Recorder() *TimeSeriesRecorder {
	return s.recorder
}

// Serve handles connections until sctx starts stopping. Requests are never
// processed concurrently.
func (s *Server) Serve(sctx *stopper.Context) error {
	logrus.Infof("listening on %s", s.ln.Addr().String())

	for {
		conn, err := s.ln.AcceptUnix()
		if err != nil {
			if sctx.IsStopping() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logrus.Errorf("accept failed: %v", pkgerrors.WithStack(err))
		} else {
			s.handle(conn)
			s.recorder.AddRecordNow()
			logrus.WithField("lastMinute", s.recorder.GetRecordsIn(time.Minute)).
				Debugf("cooling down for %s", s.cooldown)
		}

		select {
		case <-sctx.Stopping():
			return nil
		case <-time.After(s.cooldown):
		}
	}
}

// Close stops accepting and drops the connection in flight, if any.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.active != nil {
		_ = s.active.Close()
	}
	s.mu.Unlock()

	return s.ln.Close()
}

func (s *Server) setActive(c net.Conn) {
	s.mu.Lock()
	s.active = c
	s.mu.Unlock()
}

// handle runs one request/response exchange. A connection that closes
// without sending a byte gets no answer.
func (s *Server) handle(conn *net.UnixConn) {
	s.setActive(conn)
	defer func() {
		s.setActive(nil)
		_ = conn.Close()
	}()

	start := time.Now()
	entry := logrus.WithFields(peerFields(conn))

	threshold, err := protocol.ReadRequest(conn)
	if err != nil {
		entry.Debugf("dropped connection without request: %v", err)
		return
	}

	status := s.applier.Apply(int(threshold))

	if err := protocol.WriteStatus(conn, status); err != nil {
		entry.Warnf("failed to write response: %v", err)
	}

	logRequest(entry, threshold, status, start)
}
