package velodyne

import "time"

const (
	cycleNanos  = 55_296
	firingNanos = 2_304
)

// firingTimeOffset computes the precise time a single laser fired, since
// the top of the hour: the packet's own timestamp (microseconds since the
// top of the hour) plus the firing's offset within the packet.
// sequenceIndex is 2*block+sequence, ranging 0..23; channel is the
// firing's channel 0..15 within its sequence, for both VLP-16 and
// HDL-32E. The result preserves nanosecond precision even
// though the packet timestamp itself is only microsecond-precise.
func firingTimeOffset(timestampMicros uint32, sequenceIndex, channel int) time.Duration {
	base := time.Duration(timestampMicros) * time.Microsecond
	offset := time.Duration(sequenceIndex)*cycleNanos*time.Nanosecond + time.Duration(channel)*firingNanos*time.Nanosecond
	return base + offset
}
