package style

import (
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/c9s/bollband/pkg/types"
)

func NewDefaultTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsYellowWhiteOnBlack,
	}
	style.Color.Row = text.Colors{text.FgHiYellow, text.BgHiBlack}
	style.Color.RowAlternate = text.Colors{text.FgYellow, text.BgBlack}
	return &style
}

// NewPlainTableStyle is the rounded box without colors, for pipes and files.
func NewPlainTableStyle() *table.Style {
	style := *NewDefaultTableStyle()
	style.Name = "StyleRoundedPlain"
	style.Color = table.ColorOptionsDefault
	return &style
}

// BandTimeLayout formats the band timestamps in tables.
const BandTimeLayout = "2006-01-02 15:04"

// NewBandTable lays out the band points as rows of time, upper, middle,
// lower and bandwidth.
func NewBandTable(w io.Writer, title string, bands []types.BandPoint, style *table.Style) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(*style)
	t.AppendHeader(table.Row{"#", "Time", "Upper", "Middle", "Lower", "Width %"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for i, b := range bands {
		t.AppendRow(table.Row{
			i,
			b.Time().UTC().Format(BandTimeLayout),
			formatPrice(b.Upper),
			formatPrice(b.Middle),
			formatPrice(b.Lower),
			strconv.FormatFloat(b.Width(), 'f', 2, 64),
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "points", len(bands)})
	return t
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FormatTimestamp formats a unix millisecond timestamp like the band tables do.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(BandTimeLayout)
}
