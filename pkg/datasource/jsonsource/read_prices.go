package jsonsource

import (
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/c9s/bollband/pkg/types"
)

var (
	ErrNotAnArray       = errors.New("price data must be a json array")
	ErrInvalidTimestamp = errors.New("invalid candle timestamp")
	ErrInvalidNumber    = errors.New("invalid candle number")
)

// ReadPricesFromJSON reads a json price file, see ParsePrices for the layout.
func ReadPricesFromJSON(path string) (types.PriceSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	series, err := ParsePrices(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return series, nil
}

// ParsePrices accepts two layouts of candles:
//
//	[{"timestamp": 1609459200000, "open": 1, "high": 2, "low": 0.5, "close": 1.5, "volume": 10}, ...]
//	[[1609459200000, "1", "2", "0.5", "1.5", "10", ...], ...]
//
// The second one is the kline response of the Binance REST api. Numbers may
// be given as json numbers or as numeric strings.
func ParsePrices(payload []byte) (types.PriceSeries, error) {
	parser := fastjson.Parser{}
	val, err := parser.ParseBytes(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse payload")
	}

	items, err := val.Array()
	if err != nil {
		return nil, ErrNotAnArray
	}

	series := make(types.PriceSeries, 0, len(items))
	for i, item := range items {
		var p types.PricePoint
		switch item.Type() {
		case fastjson.TypeObject:
			p, err = parseObject(item)
		case fastjson.TypeArray:
			p, err = parseRow(item)
		default:
			err = errors.Errorf("unexpected %s", item.Type())
		}
		if err != nil {
			return nil, errors.Wrapf(err, "candle #%d", i)
		}

		series = append(series, p)
	}

	return series, nil
}

func parseObject(val *fastjson.Value) (p types.PricePoint, err error) {
	ts := val.Get("timestamp")
	if ts == nil {
		ts = val.Get("time")
	}
	if p.Timestamp, err = int64Value(ts); err != nil {
		return p, err
	}

	fields := []struct {
		key      string
		dst      *float64
		optional bool
	}{
		{key: "open", dst: &p.Open},
		{key: "high", dst: &p.High},
		{key: "low", dst: &p.Low},
		{key: "close", dst: &p.Close},
		{key: "volume", dst: &p.Volume, optional: true},
	}

	for _, f := range fields {
		v := val.Get(f.key)
		if v == nil && f.optional {
			continue
		}
		if *f.dst, err = floatValue(v); err != nil {
			return p, errors.Wrapf(err, "field %s", f.key)
		}
	}

	return p, nil
}

func parseRow(val *fastjson.Value) (p types.PricePoint, err error) {
	cols := val.GetArray()
	if len(cols) < 5 {
		return p, errors.Errorf("expecting at least 5 columns, got %d", len(cols))
	}

	if p.Timestamp, err = int64Value(cols[0]); err != nil {
		return p, err
	}

	for i, dst := range []*float64{&p.Open, &p.High, &p.Low, &p.Close} {
		if *dst, err = floatValue(cols[i+1]); err != nil {
			return p, errors.Wrapf(err, "column %d", i+1)
		}
	}

	if len(cols) > 5 {
		if p.Volume, err = floatValue(cols[5]); err != nil {
			return p, errors.Wrap(err, "column 5")
		}
	}

	return p, nil
}

func int64Value(val *fastjson.Value) (int64, error) {
	if val == nil {
		return 0, ErrInvalidTimestamp
	}

	switch val.Type() {
	case fastjson.TypeNumber:
		if v, err := val.Int64(); err == nil {
			return v, nil
		}
		// 1.6094592e+12 and the like
		f, err := val.Float64()
		if err != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, ErrInvalidTimestamp
		}
		return int64(f), nil

	case fastjson.TypeString:
		v, err := strconv.ParseInt(string(val.GetStringBytes()), 10, 64)
		if err != nil {
			return 0, ErrInvalidTimestamp
		}
		return v, nil
	}

	return 0, ErrInvalidTimestamp
}

func floatValue(val *fastjson.Value) (float64, error) {
	if val == nil {
		return 0, ErrInvalidNumber
	}

	switch val.Type() {
	case fastjson.TypeNumber:
		return val.GetFloat64(), nil

	case fastjson.TypeString:
		v, err := strconv.ParseFloat(string(val.GetStringBytes()), 64)
		if err != nil {
			return 0, ErrInvalidNumber
		}
		return v, nil
	}

	return 0, ErrInvalidNumber
}
