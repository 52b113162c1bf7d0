package csvsource

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bollband/pkg/types"
)

func TestReadPricesFromCSV(t *testing.T) {
	prices, err := ReadPricesFromCSV("./testdata/BTCUSDT-1h-2021-01-01.csv")
	require.NoError(t, err)
	assert.Len(t, prices, 48)
	assert.True(t, prices.IsSorted())

	first := prices[0]
	assert.Equal(t, int64(1609459200000), first.Timestamp, "Timestamp")
	assert.Equal(t, 28923.63, first.Open, "Open")
	assert.Equal(t, 28981.48, first.High, "High")
	assert.Equal(t, 28865.78, first.Low, "Low")
	assert.Equal(t, 28923.63, first.Close, "Close")
	assert.Equal(t, 1000.0, first.Volume, "Volume")

	last := prices[len(prices)-1]
	assert.Equal(t, int64(1609628400000), last.Timestamp)
	assert.Equal(t, 29121.13, last.Close)
}

func TestLoader_LoadDirectory(t *testing.T) {
	var mu sync.Mutex
	loaded := map[string]int{}

	loader := &Loader{
		Concurrency: 2,
		OnFileLoaded: func(path string, points int) {
			mu.Lock()
			loaded[filepath.Base(path)] = points
			mu.Unlock()
		},
	}

	prices, err := loader.Load(context.Background(), "./testdata/split")
	require.NoError(t, err)

	// the two parts overlap on 6 candles
	assert.Len(t, prices, 48)
	assert.True(t, prices.IsSorted())
	assert.Equal(t, map[string]int{
		"BTCUSDT-1h-part1.csv": 30,
		"BTCUSDT-1h-part2.csv": 24,
	}, loaded)

	whole, err := ReadPricesFromCSV("./testdata/BTCUSDT-1h-2021-01-01.csv")
	require.NoError(t, err)
	assert.Equal(t, whole, prices)
}

func TestLoader_Errors(t *testing.T) {
	_, err := ReadPricesFromCSV("./testdata/missing")
	assert.Error(t, err)

	dir := t.TempDir()
	_, err = ReadPricesFromCSV(dir)
	assert.EqualError(t, err, "no .csv files found in "+dir)
}

func TestFiles(t *testing.T) {
	files, err := Files("./testdata")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"testdata/BTCUSDT-1h-2021-01-01.csv",
		"testdata/split/BTCUSDT-1h-part1.csv",
		"testdata/split/BTCUSDT-1h-part2.csv",
	}, files)
}

func TestMerge(t *testing.T) {
	a := types.PriceSeries{{Timestamp: 3, Close: 3}, {Timestamp: 1, Close: 1}}
	b := types.PriceSeries{{Timestamp: 2, Close: 2}, {Timestamp: 3, Close: 30}}

	merged := Merge(a, b)
	assert.Equal(t, types.PriceSeries{
		{Timestamp: 1, Close: 1},
		{Timestamp: 2, Close: 2},
		{Timestamp: 3, Close: 30},
	}, merged)

	// inputs keep their order
	assert.Equal(t, int64(3), a[0].Timestamp)
	assert.Empty(t, Merge())
}

func TestWriteBands(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBands(&buf, []types.BandPoint{
		{Timestamp: 1000, Upper: 12.5, Middle: 10, Lower: 7.5},
		{Timestamp: 2000, Upper: 13.25, Middle: 11, Lower: 8.75},
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"timestamp,upper,middle,lower",
		"1000,12.5,10,7.5",
		"2000,13.25,11,8.75",
		"",
	}, "\n"), buf.String())
}

func TestWriteBandsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "bands.csv")
	assert.Error(t, WriteBandsFile(path, nil))

	require.NoError(t, WriteBandsFile(path, []types.BandPoint{{Timestamp: 1, Upper: 2, Middle: 1, Lower: 0}}))
	assert.FileExists(t, path)
}
