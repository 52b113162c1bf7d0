package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PriceSource selects which candle field feeds the moving average.
type PriceSource string

const (
	PriceSourceOpen  PriceSource = "open"
	PriceSourceHigh  PriceSource = "high"
	PriceSourceLow   PriceSource = "low"
	PriceSourceClose PriceSource = "close"
)

var ErrInvalidPriceSource = errors.New("invalid price source")

func ParsePriceSource(s string) (p PriceSource, err error) {
	p = PriceSource(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriceSourceOpen, PriceSourceHigh, PriceSourceLow, PriceSourceClose:
		return p, nil
	}
	return p, errors.Wrapf(ErrInvalidPriceSource, "%q", s)
}

func (p PriceSource) Validate() error {
	_, err := ParsePriceSource(string(p))
	return err
}

func (p *PriceSource) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := ParsePriceSource(s)
	if err != nil {
		return err
	}

	*p = t
	return nil
}

func (p *PriceSource) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	t, err := ParsePriceSource(s)
	if err != nil {
		return err
	}

	*p = t
	return nil
}

// Map projects a candle onto the selected field. An unknown source maps to
// the close price; Validate catches it before any computation.
func (p PriceSource) Map(point PricePoint) float64 {
	switch p {
	case PriceSourceOpen:
		return point.Open
	case PriceSourceHigh:
		return point.High
	case PriceSourceLow:
		return point.Low
	}
	return point.Close
}

// MAType is the moving-average flavour of the middle band.
type MAType string

const MATypeSMA MAType = "SMA"

var ErrInvalidMAType = errors.New("unsupported moving average type")

func (t MAType) Validate() error {
	switch MAType(strings.ToUpper(string(t))) {
	case MATypeSMA:
		return nil
	}
	return errors.Wrapf(ErrInvalidMAType, "%q", string(t))
}
