// Package report renders the final text table. Pure formatting: durations
// arrive in nanoseconds and are shown in milliseconds.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrzor/signpost-summary/internal/stats"
)

const nameWidth = 32

// Summary is everything the reporter needs from one completed pass.
type Summary struct {
	Subsystem string
	Category  string

	Matched       int
	OpenRemaining int
	UnmatchedEnds int

	// Counted only under the corresponding correlator policies; shown
	// when nonzero.
	DuplicateBegins   int
	NegativeDurations int

	Rows []stats.Row
}

// Render writes the header and up to top rows of the table to w.
func Render(w io.Writer, s Summary, top int) {
	fmt.Fprintf(w, "subsystem=%s category=%s\n", s.Subsystem, s.Category)

	counters := fmt.Sprintf("matched_intervals=%d open_intervals_remaining=%d unmatched_end_events=%d",
		s.Matched, s.OpenRemaining, s.UnmatchedEnds)
	if s.DuplicateBegins > 0 {
		counters += fmt.Sprintf(" duplicate_begins=%d", s.DuplicateBegins)
	}
	if s.NegativeDurations > 0 {
		counters += fmt.Sprintf(" negative_durations=%d", s.NegativeDurations)
	}
	fmt.Fprintln(w, counters)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-*s %8s %12s %10s %10s %10s %10s\n",
		nameWidth, "interval", "count", "total_ms", "avg_ms", "p50_ms", "p95_ms", "max_ms")
	fmt.Fprintln(w, strings.Repeat("-", nameWidth)+" "+
		strings.Repeat("-", 8)+" "+
		strings.Repeat("-", 12)+" "+
		strings.Repeat("-", 10)+" "+
		strings.Repeat("-", 10)+" "+
		strings.Repeat("-", 10)+" "+
		strings.Repeat("-", 10))

	if top < 0 || top > len(s.Rows) {
		top = len(s.Rows)
	}
	for _, row := range s.Rows[:top] {
		fmt.Fprintf(w, "%-*s %8d %12.3f %10.3f %10.3f %10.3f %10.3f\n",
			nameWidth, truncate(row.Name, nameWidth),
			row.Count,
			nsToMS(float64(row.TotalNS)),
			nsToMS(row.AvgNS),
			nsToMS(row.P50NS),
			nsToMS(row.P95NS),
			nsToMS(float64(row.MaxNS)))
	}
}

func nsToMS(ns float64) float64 {
	return ns / 1e6
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width]
}
