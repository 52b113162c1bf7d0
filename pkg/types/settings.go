package types

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// BandStyle configures one band line.
type BandStyle struct {
	Show      bool      `json:"show" yaml:"show"`
	Color     Color     `json:"color" yaml:"color"`
	LineWidth int       `json:"lineWidth" yaml:"lineWidth"`
	LineStyle LineStyle `json:"lineStyle" yaml:"lineStyle"`
}

func (s BandStyle) Validate(field string) (err error) {
	if e := s.Color.Validate(); e != nil {
		err = multierr.Append(err, wrapConfigurationError(field+".color", s.Color, e))
	}

	if s.LineWidth < 1 {
		err = multierr.Append(err, NewConfigurationError(field+".lineWidth", s.LineWidth, "must be at least 1"))
	}

	if e := s.LineStyle.Validate(); e != nil {
		err = multierr.Append(err, wrapConfigurationError(field+".lineStyle", s.LineStyle, e))
	}

	return err
}

// FillStyle configures the area between the upper and the lower band.
type FillStyle struct {
	Show    bool    `json:"show" yaml:"show"`
	Color   Color   `json:"color" yaml:"color"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
}

// FillColor is the fill color with the opacity folded in as an alpha byte.
func (s FillStyle) FillColor() string {
	return s.Color.WithOpacity(s.Opacity)
}

func (s FillStyle) Validate(field string) (err error) {
	if e := s.Color.Validate(); e != nil {
		err = multierr.Append(err, wrapConfigurationError(field+".color", s.Color, e))
	}

	if math.IsNaN(s.Opacity) || s.Opacity < 0 || s.Opacity > 1 {
		err = multierr.Append(err, NewConfigurationError(field+".opacity", s.Opacity, "must be within [0, 1]"))
	}

	return err
}

// BollingerSettings is an immutable value: every builder method returns a copy.
// All fields are comparable, so two settings can be compared with ==.
type BollingerSettings struct {
	Length           int         `json:"length" yaml:"length"`
	MAType           MAType      `json:"maType" yaml:"maType"`
	Source           PriceSource `json:"source" yaml:"source"`
	StdDevMultiplier float64     `json:"stdDevMultiplier" yaml:"stdDevMultiplier"`
	Offset           int         `json:"offset" yaml:"offset"`

	MiddleBand BandStyle `json:"middleBand" yaml:"middleBand"`
	UpperBand  BandStyle `json:"upperBand" yaml:"upperBand"`
	LowerBand  BandStyle `json:"lowerBand" yaml:"lowerBand"`

	BackgroundFill FillStyle `json:"backgroundFill" yaml:"backgroundFill"`
}

func DefaultBollingerSettings() BollingerSettings {
	return BollingerSettings{
		Length:           20,
		MAType:           MATypeSMA,
		Source:           PriceSourceClose,
		StdDevMultiplier: 2,
		Offset:           0,
		MiddleBand: BandStyle{
			Show:      true,
			Color:     "#3B82F6",
			LineWidth: 1,
			LineStyle: LineStyleSolid,
		},
		UpperBand: BandStyle{
			Show:      true,
			Color:     "#10B981",
			LineWidth: 1,
			LineStyle: LineStyleSolid,
		},
		LowerBand: BandStyle{
			Show:      true,
			Color:     "#EF4444",
			LineWidth: 1,
			LineStyle: LineStyleSolid,
		},
		BackgroundFill: FillStyle{
			Show:    true,
			Opacity: 0.1,
			Color:   "#3B82F6",
		},
	}
}

// Validate returns every violation found, combined with multierr.
func (s BollingerSettings) Validate() (err error) {
	if s.Length < 1 {
		err = multierr.Append(err, NewConfigurationError("length", s.Length, "must be at least 1"))
	}

	if e := s.MAType.Validate(); e != nil {
		err = multierr.Append(err, wrapConfigurationError("maType", s.MAType, e))
	}

	if e := s.Source.Validate(); e != nil {
		err = multierr.Append(err, wrapConfigurationError("source", s.Source, e))
	}

	if math.IsNaN(s.StdDevMultiplier) || math.IsInf(s.StdDevMultiplier, 0) || s.StdDevMultiplier < 0 {
		err = multierr.Append(err, NewConfigurationError("stdDevMultiplier", s.StdDevMultiplier, "must be a non-negative number"))
	}

	err = multierr.Combine(err,
		s.MiddleBand.Validate("middleBand"),
		s.UpperBand.Validate("upperBand"),
		s.LowerBand.Validate("lowerBand"),
		s.BackgroundFill.Validate("backgroundFill"),
	)
	return err
}

// Band returns the style of the given band line.
func (s BollingerSettings) Band(kind BandKind) BandStyle {
	switch kind {
	case BandUpper:
		return s.UpperBand
	case BandLower:
		return s.LowerBand
	}
	return s.MiddleBand
}

// Lead is the number of leading candles that do not produce a band point.
func (s BollingerSettings) Lead() int {
	if s.Length < 1 {
		return 0
	}
	return s.Length - 1
}

func (s BollingerSettings) String() string {
	return fmt.Sprintf("BOLL(%d, %s, %s, k=%g, offset=%d)", s.Length, s.MAType, s.Source, s.StdDevMultiplier, s.Offset)
}

func (s BollingerSettings) WithLength(length int) BollingerSettings {
	s.Length = length
	return s
}

func (s BollingerSettings) WithSource(source PriceSource) BollingerSettings {
	s.Source = source
	return s
}

func (s BollingerSettings) WithStdDevMultiplier(k float64) BollingerSettings {
	s.StdDevMultiplier = k
	return s
}

func (s BollingerSettings) WithOffset(offset int) BollingerSettings {
	s.Offset = offset
	return s
}

func (s BollingerSettings) WithBand(kind BandKind, style BandStyle) BollingerSettings {
	switch kind {
	case BandUpper:
		s.UpperBand = style
	case BandMiddle:
		s.MiddleBand = style
	case BandLower:
		s.LowerBand = style
	}
	return s
}

func (s BollingerSettings) WithBackgroundFill(fill FillStyle) BollingerSettings {
	s.BackgroundFill = fill
	return s
}
