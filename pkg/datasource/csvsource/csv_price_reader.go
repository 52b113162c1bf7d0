package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/c9s/bollband/pkg/types"
)

// PriceReader is an interface for reading candlesticks.
type PriceReader interface {
	Read() (types.PricePoint, error)
	ReadAll() (types.PriceSeries, error)
}

var _ PriceReader = (*CSVPriceReader)(nil)

// CSVPriceReader is a PriceReader that reads from a CSV file.
type CSVPriceReader struct {
	csv     *csv.Reader
	decoder CSVPriceDecoder
	line    int
}

// MakeCSVPriceReader is a factory method type that creates a new CSVPriceReader.
type MakeCSVPriceReader func(csv *csv.Reader) *CSVPriceReader

// NewCSVPriceReader creates a new CSVPriceReader with the default Binance decoder.
func NewCSVPriceReader(csv *csv.Reader) *CSVPriceReader {
	return NewCSVPriceReaderWithDecoder(csv, BinanceCSVPriceDecoder)
}

// NewCSVPriceReaderWithDecoder creates a new CSVPriceReader with the given decoder.
func NewCSVPriceReaderWithDecoder(csv *csv.Reader, decoder CSVPriceDecoder) *CSVPriceReader {
	csv.FieldsPerRecord = -1
	csv.ReuseRecord = true
	return &CSVPriceReader{
		csv:     csv,
		decoder: decoder,
	}
}

// Read reads the next PricePoint from the underlying CSV data.
func (r *CSVPriceReader) Read() (types.PricePoint, error) {
	var p types.PricePoint

	rec, err := r.csv.Read()
	if err != nil {
		return p, err
	}
	r.line++

	return r.decoder(rec)
}

// ReadAll reads all the PricePoints from the underlying CSV data. A header
// line, recognised by a first record that fails to decode its time column, is
// skipped.
func (r *CSVPriceReader) ReadAll() (types.PriceSeries, error) {
	var ps types.PriceSeries
	for {
		p, err := r.Read()
		if err == io.EOF {
			break
		}
		if err == ErrInvalidTimeFormat && r.line == 1 {
			continue
		}
		if err != nil {
			return nil, &DecodeError{Line: r.line, Err: err}
		}
		ps = append(ps, p)
	}

	return ps, nil
}

// DecodeError tells which CSV line could not be decoded.
type DecodeError struct {
	File string
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
