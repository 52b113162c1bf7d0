package types

// BandStylePatch is a partial update of a BandStyle; nil fields are kept.
type BandStylePatch struct {
	Show      *bool      `json:"show,omitempty" yaml:"show,omitempty"`
	Color     *Color     `json:"color,omitempty" yaml:"color,omitempty"`
	LineWidth *int       `json:"lineWidth,omitempty" yaml:"lineWidth,omitempty"`
	LineStyle *LineStyle `json:"lineStyle,omitempty" yaml:"lineStyle,omitempty"`
}

func (p *BandStylePatch) Apply(s BandStyle) BandStyle {
	if p == nil {
		return s
	}
	if p.Show != nil {
		s.Show = *p.Show
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.LineWidth != nil {
		s.LineWidth = *p.LineWidth
	}
	if p.LineStyle != nil {
		s.LineStyle = *p.LineStyle
	}
	return s
}

type FillStylePatch struct {
	Show    *bool    `json:"show,omitempty" yaml:"show,omitempty"`
	Color   *Color   `json:"color,omitempty" yaml:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

func (p *FillStylePatch) Apply(s FillStyle) FillStyle {
	if p == nil {
		return s
	}
	if p.Show != nil {
		s.Show = *p.Show
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Opacity != nil {
		s.Opacity = *p.Opacity
	}
	return s
}

// SettingsPatch merges a subset of fields into a BollingerSettings value.
type SettingsPatch struct {
	Length           *int         `json:"length,omitempty" yaml:"length,omitempty"`
	MAType           *MAType      `json:"maType,omitempty" yaml:"maType,omitempty"`
	Source           *PriceSource `json:"source,omitempty" yaml:"source,omitempty"`
	StdDevMultiplier *float64     `json:"stdDevMultiplier,omitempty" yaml:"stdDevMultiplier,omitempty"`
	Offset           *int         `json:"offset,omitempty" yaml:"offset,omitempty"`

	MiddleBand *BandStylePatch `json:"middleBand,omitempty" yaml:"middleBand,omitempty"`
	UpperBand  *BandStylePatch `json:"upperBand,omitempty" yaml:"upperBand,omitempty"`
	LowerBand  *BandStylePatch `json:"lowerBand,omitempty" yaml:"lowerBand,omitempty"`

	BackgroundFill *FillStylePatch `json:"backgroundFill,omitempty" yaml:"backgroundFill,omitempty"`
}

// Apply returns a new settings value; the receiver and s are left untouched.
func (p *SettingsPatch) Apply(s BollingerSettings) BollingerSettings {
	if p == nil {
		return s
	}

	if p.Length != nil {
		s.Length = *p.Length
	}
	if p.MAType != nil {
		s.MAType = *p.MAType
	}
	if p.Source != nil {
		s.Source = *p.Source
	}
	if p.StdDevMultiplier != nil {
		s.StdDevMultiplier = *p.StdDevMultiplier
	}
	if p.Offset != nil {
		s.Offset = *p.Offset
	}

	s.MiddleBand = p.MiddleBand.Apply(s.MiddleBand)
	s.UpperBand = p.UpperBand.Apply(s.UpperBand)
	s.LowerBand = p.LowerBand.Apply(s.LowerBand)
	s.BackgroundFill = p.BackgroundFill.Apply(s.BackgroundFill)
	return s
}

// IsEmpty reports whether applying the patch would change nothing.
func (p *SettingsPatch) IsEmpty() bool {
	return p == nil || (p.Length == nil && p.MAType == nil && p.Source == nil &&
		p.StdDevMultiplier == nil && p.Offset == nil &&
		p.MiddleBand == nil && p.UpperBand == nil && p.LowerBand == nil &&
		p.BackgroundFill == nil)
}
