package types

import (
	"fmt"
	"time"
)

// PricePoint is a single OHLCV candle. Timestamp is a unix millisecond
// timestamp, strictly ascending across a series.
type PricePoint struct {
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
	Open      float64 `json:"open" yaml:"open"`
	High      float64 `json:"high" yaml:"high"`
	Low       float64 `json:"low" yaml:"low"`
	Close     float64 `json:"close" yaml:"close"`
	Volume    float64 `json:"volume" yaml:"volume"`
}

func (p PricePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

func (p PricePoint) String() string {
	return fmt.Sprintf("PricePoint %s O=%f H=%f L=%f C=%f V=%f",
		p.Time().UTC().Format(time.RFC3339), p.Open, p.High, p.Low, p.Close, p.Volume)
}

// PriceSeries is an ordered, read-only sequence of candles.
type PriceSeries []PricePoint

func (s PriceSeries) Len() int {
	return len(s)
}

// Timestamps returns the timestamps of the series in order.
func (s PriceSeries) Timestamps() []int64 {
	ts := make([]int64, len(s))
	for i, p := range s {
		ts[i] = p.Timestamp
	}
	return ts
}

// IndexOf returns the index of the candle with the given timestamp, or -1.
// The series must be sorted by timestamp.
func (s PriceSeries) IndexOf(timestamp int64) int {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s[mid].Timestamp < timestamp {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo < len(s) && s[lo].Timestamp == timestamp {
		return lo
	}

	return -1
}

// IsSorted reports whether the timestamps are strictly ascending.
func (s PriceSeries) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Timestamp <= s[i-1].Timestamp {
			return false
		}
	}
	return true
}
