// Package stats accumulates interval durations per name and computes the
// summary statistics for the report.
package stats

import (
	"math"
	"sort"
)

// Aggregator collects duration samples per interval name. Accumulation is
// in nanoseconds throughout; conversion to display units happens in the
// reporter only.
type Aggregator struct {
	samples map[string][]int64
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		samples: make(map[string][]int64),
	}
}

// Add appends one duration sample for name.
func (a *Aggregator) Add(name string, durationNS int64) {
	a.samples[name] = append(a.samples[name], durationNS)
}

// Row is the computed summary for one interval name.
type Row struct {
	Name    string
	Count   int
	TotalNS int64
	AvgNS   float64
	P50NS   float64
	P95NS   float64
	MaxNS   int64
}

// Rows computes the summary for every name with at least one sample, sorted
// by total time descending. Equal totals are ordered by name so output is
// deterministic.
func (a *Aggregator) Rows() []Row {
	rows := make([]Row, 0, len(a.samples))
	for name, durs := range a.samples {
		var total, max int64
		for _, d := range durs {
			total += d
			if d > max {
				max = d
			}
		}
		rows = append(rows, Row{
			Name:    name,
			Count:   len(durs),
			TotalNS: total,
			AvgNS:   float64(total) / float64(len(durs)),
			P50NS:   Percentile(durs, 0.50),
			P95NS:   Percentile(durs, 0.95),
			MaxNS:   max,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalNS != rows[j].TotalNS {
			return rows[i].TotalNS > rows[j].TotalNS
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// Percentile estimates the p-th percentile (p in [0,1]) by linear
// interpolation between sorted neighbors. Returns NaN for an empty input;
// the aggregator never produces one since names only exist with >=1 sample.
func Percentile(samples []int64, p float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	sorted := make([]int64, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if len(sorted) == 1 {
		return float64(sorted[0])
	}

	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := idx - float64(lo)
	return float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac
}
