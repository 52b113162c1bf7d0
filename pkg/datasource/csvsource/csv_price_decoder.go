package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c9s/bollband/pkg/types"
)

// MetaTraderTimeFormat is the time format expected by the MetaTrader decoder when cols [0] and [1] are used.
const MetaTraderTimeFormat = "02/01/2006 15:04"

var (
	// ErrNotEnoughColumns is returned when the CSV price record does not have enough columns.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the CSV price record does not have a valid time unix milli format.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the CSV price record does not prices in expected format.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when the CSV price record does not have a valid volume format.
	ErrInvalidVolumeFormat = errors.New("volume must be in valid float format")
)

// CSVPriceDecoder is an extension point for CSVPriceReader to support custom file formats.
type CSVPriceDecoder func(record []string) (types.PricePoint, error)

// NewBinanceCSVPriceReader creates a new CSVPriceReader for Binance CSV files.
func NewBinanceCSVPriceReader(csv *csv.Reader) *CSVPriceReader {
	return &CSVPriceReader{
		csv:     csv,
		decoder: BinanceCSVPriceDecoder,
	}
}

// BinanceCSVPriceDecoder decodes a CSV record from Binance or Bybit into a PricePoint.
// The columns are open time in unix milliseconds, open, high, low, close and an
// optional volume; any trailing columns are ignored.
func BinanceCSVPriceDecoder(record []string) (types.PricePoint, error) {
	var p, empty types.PricePoint

	if len(record) < 5 {
		return empty, ErrNotEnoughColumns
	}

	msec, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}
	p.Timestamp = msec

	if err := parseOHLC(&p, record[1:5]); err != nil {
		return empty, err
	}

	if len(record) > 5 {
		if p.Volume, err = parseFloat(record[5]); err != nil {
			return empty, ErrInvalidVolumeFormat
		}
	}

	return p, nil
}

// NewMetaTraderCSVPriceReader creates a new CSVPriceReader for MetaTrader CSV files.
func NewMetaTraderCSVPriceReader(csv *csv.Reader) *CSVPriceReader {
	csv.Comma = ';'
	return &CSVPriceReader{
		csv:     csv,
		decoder: MetaTraderCSVPriceDecoder,
	}
}

// MetaTraderCSVPriceDecoder decodes a CSV record from MetaTrader into a PricePoint.
// Date and time are read as UTC.
func MetaTraderCSVPriceDecoder(record []string) (types.PricePoint, error) {
	var p, empty types.PricePoint

	if len(record) < 6 {
		return empty, ErrNotEnoughColumns
	}

	t, err := time.Parse(MetaTraderTimeFormat, fmt.Sprintf("%s %s", record[0], record[1]))
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}
	p.Timestamp = t.UnixMilli()

	if err := parseOHLC(&p, record[2:6]); err != nil {
		return empty, err
	}

	if len(record) > 6 {
		if p.Volume, err = parseFloat(record[6]); err != nil {
			return empty, ErrInvalidVolumeFormat
		}
	}

	return p, nil
}

func parseOHLC(p *types.PricePoint, cols []string) (err error) {
	for i, dst := range []*float64{&p.Open, &p.High, &p.Low, &p.Close} {
		if *dst, err = parseFloat(cols[i]); err != nil {
			return ErrInvalidPriceFormat
		}
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
