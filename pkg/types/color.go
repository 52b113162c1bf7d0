package types

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrInvalidColor = errors.New("invalid color, expecting #RRGGBB")

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
var hexColorAlphaPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)

// Color is an RGB hex string "#RRGGBB". It never carries alpha; alpha is
// derived from an opacity at draw time.
type Color string

func (c Color) Validate() error {
	if !hexColorPattern.MatchString(string(c)) {
		return errors.Wrapf(ErrInvalidColor, "%q", string(c))
	}
	return nil
}

func (c Color) String() string {
	return string(c)
}

// WithOpacity appends the two-digit lowercase hex alpha byte computed from
// opacity, e.g. "#3B82F6" + 0.1 => "#3B82F61a".
func (c Color) WithOpacity(opacity float64) string {
	return fmt.Sprintf("%s%02x", string(c), AlphaByte(opacity))
}

// AlphaByte converts an opacity in [0, 1] to round(opacity*255).
func AlphaByte(opacity float64) uint8 {
	if math.IsNaN(opacity) || opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return uint8(math.Round(opacity * 255))
}

// ParseDrawingColor parses "#RRGGBB" or "#RRGGBBAA" into a go-chart color.
func ParseDrawingColor(s string) (drawing.Color, error) {
	if !hexColorAlphaPattern.MatchString(s) {
		return drawing.Color{}, errors.Wrapf(ErrInvalidColor, "%q", s)
	}

	c := drawing.ColorFromHex(s[:7])
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return drawing.Color{}, errors.Wrapf(ErrInvalidColor, "%q", s)
		}
		c = c.WithAlpha(uint8(a))
	}

	return c, nil
}
