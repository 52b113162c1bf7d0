package csvsource

import (
	"context"
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/bollband/pkg/types"
)

var log = logrus.WithField("datasource", "csv")

// Loader reads a single .csv file or every .csv file under a directory.
type Loader struct {
	// Maker creates the reader of each file, the Binance format by default.
	Maker MakeCSVPriceReader

	// Concurrency limits how many files are decoded at once, GOMAXPROCS by default.
	Concurrency int

	// OnFileLoaded is called after each file is decoded. It may be called
	// from multiple goroutines.
	OnFileLoaded func(path string, points int)
}

// ReadPricesFromCSV reads all the .csv files in a given directory or a single file into a price series.
// Wraps a default CSVPriceReader with Binance decoder for convenience.
func ReadPricesFromCSV(path string) (types.PriceSeries, error) {
	return ReadPricesFromCSVWithDecoder(path, MakeCSVPriceReader(NewBinanceCSVPriceReader))
}

// ReadPricesFromCSVWithDecoder permits using a custom CSVPriceReader.
func ReadPricesFromCSVWithDecoder(path string, maker MakeCSVPriceReader) (types.PriceSeries, error) {
	loader := &Loader{Maker: maker}
	return loader.Load(context.Background(), path)
}

// Files lists the .csv files to load from path in lexical order.
func Files(path string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".csv" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", path)
	}

	sort.Strings(files)
	return files, nil
}

// Load decodes the files concurrently and merges them into one series
// ordered by timestamp. When several files carry the same timestamp, the
// candle from the file that sorts last wins.
func (l *Loader) Load(ctx context.Context, path string) (types.PriceSeries, error) {
	files, err := Files(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no .csv files found in %s", path)
	}

	maker := l.Maker
	if maker == nil {
		maker = NewBinanceCSVPriceReader
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]types.PriceSeries, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			series, err := readFile(file, maker)
			if err != nil {
				return err
			}

			results[i] = series
			if l.OnFileLoaded != nil {
				l.OnFileLoaded(file, len(series))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := Merge(results...)
	log.Debugf("loaded %d candles from %d file(s) under %s", len(merged), len(files), path)
	return merged, nil
}

func readFile(path string, maker MakeCSVPriceReader) (types.PriceSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Read ops only so safe to ignore err return
	defer file.Close()

	series, err := maker(csv.NewReader(file)).ReadAll()
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.File = path
			return nil, decodeErr
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	return series, nil
}

// Merge concatenates the series, sorts the candles by timestamp and drops
// duplicates, keeping the candle that came last.
func Merge(series ...types.PriceSeries) types.PriceSeries {
	var n int
	for _, s := range series {
		n += len(s)
	}

	merged := make(types.PriceSeries, 0, n)
	for _, s := range series {
		merged = append(merged, s...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})

	out := merged[:0]
	for _, p := range merged {
		if len(out) > 0 && out[len(out)-1].Timestamp == p.Timestamp {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
