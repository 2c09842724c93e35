// Package timesync anchors trace-relative timestamps to wall-clock time so
// re-emitted spans carry usable start and end times.
package timesync

import "time"

// Converter maps trace-relative nanosecond offsets onto wall-clock time.
// The export only carries offsets from trace start, so the anchor is chosen
// at construction; every interval keeps its relative position and duration.
type Converter struct {
	base time.Time
}

// NewConverter anchors trace time zero at base.
func NewConverter(base time.Time) *Converter {
	return &Converter{base: base}
}

// ToWallClock converts a trace-relative timestamp to wall-clock time.
func (c *Converter) ToWallClock(offsetNS int64) time.Time {
	return c.base.Add(time.Duration(offsetNS))
}

// Base returns the anchor used for conversions.
func (c *Converter) Base() time.Time {
	return c.base
}
