package timesync

import (
	"testing"
	"time"
)

func TestConverter_ToWallClock(t *testing.T) {
	base := time.Unix(1700000000, 0)
	converter := NewConverter(base)

	tests := []struct {
		name     string
		offsetNS int64
		want     time.Time
	}{
		{
			name:     "zero offset is the anchor",
			offsetNS: 0,
			want:     base,
		},
		{
			name:     "one second",
			offsetNS: 1_000_000_000,
			want:     base.Add(1 * time.Second),
		},
		{
			name:     "sub-millisecond precision",
			offsetNS: 123_456_789,
			want:     base.Add(123*time.Millisecond + 456*time.Microsecond + 789*time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := converter.ToWallClock(tt.offsetNS)
			if !got.Equal(tt.want) {
				t.Errorf("ToWallClock(%d) = %v, want %v", tt.offsetNS, got, tt.want)
			}
		})
	}
}

func TestConverter_PreservesDurations(t *testing.T) {
	converter := NewConverter(time.Now())

	start := converter.ToWallClock(1000)
	end := converter.ToWallClock(5000)
	if d := end.Sub(start); d != 4000*time.Nanosecond {
		t.Errorf("interval duration = %v, want 4000ns", d)
	}
}

func TestConverter_Base(t *testing.T) {
	base := time.Unix(1700000000, 0)
	if got := NewConverter(base).Base(); !got.Equal(base) {
		t.Errorf("Base() = %v, want %v", got, base)
	}
}
