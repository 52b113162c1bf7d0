package types

import (
	"fmt"
	"time"
)

// BandPoint is one computed window of the bollinger band.
type BandPoint struct {
	Timestamp int64   `json:"timestamp"`
	Upper     float64 `json:"upper"`
	Middle    float64 `json:"middle"`
	Lower     float64 `json:"lower"`
}

func (b BandPoint) Time() time.Time {
	return time.UnixMilli(b.Timestamp)
}

// Width returns (upper - lower) / middle * 100, or 0 when the middle is not positive.
func (b BandPoint) Width() float64 {
	if b.Middle <= 0 {
		return 0
	}
	return (b.Upper - b.Lower) / b.Middle * 100
}

func (b BandPoint) String() string {
	return fmt.Sprintf("BandPoint %s upper=%f middle=%f lower=%f",
		b.Time().UTC().Format(time.RFC3339), b.Upper, b.Middle, b.Lower)
}

// BandKind names one of the three band lines.
type BandKind string

const (
	BandUpper  BandKind = "upper"
	BandMiddle BandKind = "middle"
	BandLower  BandKind = "lower"
)

// BandKinds is the order in which band lines are drawn.
var BandKinds = []BandKind{BandUpper, BandMiddle, BandLower}

// Value picks the field named by kind.
func (b BandPoint) Value(kind BandKind) float64 {
	switch kind {
	case BandUpper:
		return b.Upper
	case BandLower:
		return b.Lower
	}
	return b.Middle
}
