// Package correlator pairs begin events with their matching end events and
// emits completed interval durations.
package correlator

// Key identifies one in-flight interval. Signpost identifiers are only
// unique per thread, so both parts participate in equality.
type Key struct {
	Thread      string
	Correlation string
}

// Sink receives every successfully matched interval.
type Sink interface {
	IntervalClosed(name string, key Key, startNS, endNS int64)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(name string, key Key, startNS, endNS int64)

// IntervalClosed calls f.
func (f SinkFunc) IntervalClosed(name string, key Key, startNS, endNS int64) {
	f(name, key, startNS, endNS)
}

// DuplicateBeginPolicy controls what happens when a begin arrives for a key
// that is already open. Either way the newer begin wins; the policies differ
// only in whether the discarded begin is counted.
type DuplicateBeginPolicy int

const (
	ReplaceSilently DuplicateBeginPolicy = iota
	ReplaceAndCount
)

// NegativeDurationPolicy controls what happens when a matched pair computes
// a negative duration (clock skew in the export). The sample is always
// dropped; the policies differ only in whether the drop is counted.
type NegativeDurationPolicy int

const (
	DropSilently NegativeDurationPolicy = iota
	DropAndCount
)

type openInterval struct {
	startNS int64
	name    string
}

// Correlator is a strictly forward, single-pass matcher. State per key is
// either absent or one open interval; a matching end returns the key to
// absent and emits the interval to the sink.
type Correlator struct {
	open map[Key]openInterval
	sink Sink

	dupPolicy DuplicateBeginPolicy
	negPolicy NegativeDurationPolicy

	matched           int
	unmatchedEnds     int
	duplicateBegins   int
	negativeDurations int
}

// New creates a Correlator emitting matched intervals to sink.
func New(sink Sink, dup DuplicateBeginPolicy, neg NegativeDurationPolicy) *Correlator {
	return &Correlator{
		open:      make(map[Key]openInterval),
		sink:      sink,
		dupPolicy: dup,
		negPolicy: neg,
	}
}

// Begin opens an interval for key. A begin on an already-open key replaces
// the existing entry; the earlier begin never produces a sample and is not
// counted as unmatched.
func (c *Correlator) Begin(key Key, timeNS int64, name string) {
	if _, exists := c.open[key]; exists && c.dupPolicy == ReplaceAndCount {
		c.duplicateBegins++
	}
	c.open[key] = openInterval{startNS: timeNS, name: name}
}

// End closes the interval open for key, if any. The sample is attributed to
// the begin event's name regardless of what the end record carries, which is
// why End takes no name. Negative durations are dropped without touching the
// matched counter.
func (c *Correlator) End(key Key, timeNS int64) {
	iv, ok := c.open[key]
	if !ok {
		c.unmatchedEnds++
		return
	}
	delete(c.open, key)

	dt := timeNS - iv.startNS
	if dt < 0 {
		if c.negPolicy == DropAndCount {
			c.negativeDurations++
		}
		return
	}

	c.matched++
	c.sink.IntervalClosed(iv.name, key, iv.startNS, timeNS)
}

// Matched returns the number of intervals successfully paired.
func (c *Correlator) Matched() int { return c.matched }

// UnmatchedEnds returns the number of end events with no open begin.
func (c *Correlator) UnmatchedEnds() int { return c.unmatchedEnds }

// OpenCount returns the number of intervals still open; at stream end this
// is the residual-open count.
func (c *Correlator) OpenCount() int { return len(c.open) }

// DuplicateBegins returns the number of begins that displaced an open
// interval. Always zero under ReplaceSilently.
func (c *Correlator) DuplicateBegins() int { return c.duplicateBegins }

// NegativeDurations returns the number of matches dropped for computing a
// negative duration. Always zero under DropSilently.
func (c *Correlator) NegativeDurations() int { return c.negativeDurations }
