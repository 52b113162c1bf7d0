package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type LineStyle string

const (
	LineStyleSolid  LineStyle = "solid"
	LineStyleDashed LineStyle = "dashed"
)

var ErrInvalidLineStyle = errors.New("invalid line style")

// DashedPattern is the on/off pattern, in pixels, of a dashed band line.
var DashedPattern = []float64{5, 5}

func ParseLineStyle(s string) (LineStyle, error) {
	l := LineStyle(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case LineStyleSolid, LineStyleDashed:
		return l, nil
	}
	return l, errors.Wrapf(ErrInvalidLineStyle, "%q", s)
}

func (l LineStyle) Validate() error {
	_, err := ParseLineStyle(string(l))
	return err
}

// DashArray returns a fresh dash pattern; an empty slice means a continuous line.
func (l LineStyle) DashArray() []float64 {
	if l == LineStyleDashed {
		return append([]float64(nil), DashedPattern...)
	}
	return []float64{}
}

func (l *LineStyle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := ParseLineStyle(s)
	if err != nil {
		return err
	}

	*l = t
	return nil
}

func (l *LineStyle) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	t, err := ParseLineStyle(s)
	if err != nil {
		return err
	}

	*l = t
	return nil
}
