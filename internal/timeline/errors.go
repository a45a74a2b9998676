package timeline

import "fmt"

// ClockRegressionError reports a TIME instruction that encodes a time earlier
// than the running clock. The script is malformed and conversion of the file
// stops; nothing is clamped.
type ClockRegressionError struct {
	Offset  int    // byte offset of the offending TIME instruction
	ClockMS uint64 // clock value in effect
	ToMS    uint64 // the earlier time the instruction encoded
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("clock regression at offset %d: %dms after %dms", e.Offset, e.ToMS, e.ClockMS)
}
