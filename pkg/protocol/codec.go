// Package protocol implements the fixed-size exchange between batteryctl
// and batteryd: the client writes one request byte (a Threshold), the
// daemon answers with one status byte. There is no framing, length prefix
// or version; each connection carries exactly one exchange.
package protocol

import (
	"io"

	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidStatus is returned by ReadStatus for a byte outside 0..3.
var ErrInvalidStatus = pkgerrors.New("invalid status byte")

// WriteRequest sends t as a single byte.
func WriteRequest(w io.Writer, t Threshold) error {
	return writeByte(w, byte(t))
}

// ReadRequest reads exactly one request byte.
func ReadRequest(r io.Reader) (Threshold, error) {
	b, err := readByte(r)
	if err != nil {
		return 0, err
	}
	return Threshold(int8(b)), nil
}

// WriteStatus sends s as a single byte.
func WriteStatus(w io.Writer, s Status) error {
	return writeByte(w, byte(s))
}

// ReadStatus reads exactly one status byte. For a byte outside the defined
// statuses it returns the raw value together with ErrInvalidStatus.
func ReadStatus(r io.Reader) (Status, error) {
	b, err := readByte(r)
	if err != nil {
		return 0, err
	}
	s := Status(int8(b))
	if !s.Valid() {
		return s, pkgerrors.Wrapf(ErrInvalidStatus, "got %d", int8(b))
	}
	return s, nil
}

func writeByte(w io.Writer, b byte) error {
	n, err := w.Write([]byte{b})
	if err != nil {
		return err
	}
	if n < 1 {
		return io.ErrShortWrite
	}
	return nil
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
