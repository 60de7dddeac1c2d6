package protocol

const (
	// MinThreshold is the lowest charge-stop percentage the daemon accepts.
	MinThreshold = 50
	// MaxThreshold is the highest charge-stop percentage.
	MaxThreshold = 100
	// SafeDefaultThreshold is written when a persisted value is out of range.
	SafeDefaultThreshold = MaxThreshold

	// MaxInputLength is the longest threshold string the client accepts.
	MaxInputLength = 3
)

// Threshold is a requested charge-stop percentage as carried on the wire:
// one signed byte, two's complement, -128..127. Only 1..100 is meaningful
// to the client; the daemon validates every representable value.
type Threshold int8

// Check classifies v against the accepted range. It returns StatusSuccess
// when v may be written to the hardware.
func Check(v int) Status {
	switch {
	case v < MinThreshold:
		return StatusValueTooSmall
	case v > MaxThreshold:
		return StatusValueTooLarge
	default:
		return StatusSuccess
	}
}
