package datasource

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/bollband/pkg/datasource/csvsource"
	"github.com/c9s/bollband/pkg/datasource/jsonsource"
	"github.com/c9s/bollband/pkg/types"
)

type Format string

const (
	FormatAuto       Format = ""
	FormatCSV        Format = "csv"
	FormatMetaTrader Format = "metatrader"
	FormatJSON       Format = "json"
)

var ErrUnsupportedFormat = errors.New("unsupported price data format")

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatAuto, FormatCSV, FormatMetaTrader, FormatJSON:
		return f, nil
	case "binance":
		return FormatCSV, nil
	case "mt", "mt4", "mt5":
		return FormatMetaTrader, nil
	}
	return f, errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// Options of Load.
type Options struct {
	Format Format

	// OnFileLoaded reports progress of csv directory loading.
	OnFileLoaded func(path string, points int)
}

// Load reads a price series from a csv file, a directory of csv files or a
// json file. The auto format picks json for a .json file and the Binance csv
// layout for everything else.
//
// The returned series is sorted by timestamp; unsorted input is an error.
func Load(ctx context.Context, path string, options Options) (types.PriceSeries, error) {
	format := options.Format
	if format == FormatAuto {
		format = detectFormat(path)
	}

	var series types.PriceSeries
	var err error

	switch format {
	case FormatJSON:
		series, err = jsonsource.ReadPricesFromJSON(path)

	case FormatCSV, FormatMetaTrader:
		loader := &csvsource.Loader{OnFileLoaded: options.OnFileLoaded}
		if format == FormatMetaTrader {
			loader.Maker = csvsource.NewMetaTraderCSVPriceReader
		}
		series, err = loader.Load(ctx, path)

	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	if err != nil {
		return nil, err
	}

	if !series.IsSorted() {
		return nil, errors.Errorf("%s: candles must be sorted by timestamp, strictly increasing", path)
	}

	return series, nil
}

func detectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return FormatJSON
		}
	}
	return FormatCSV
}
