package csvsource

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/c9s/bollband/pkg/types"
)

var bandHeader = []string{"timestamp", "upper", "middle", "lower"}

// WriteBands writes the band points as csv, one row per point after a header row.
func WriteBands(w io.Writer, bands []types.BandPoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(bandHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}

	for _, b := range bands {
		row := []string{
			strconv.FormatInt(b.Timestamp, 10),
			formatFloat(b.Upper),
			formatFloat(b.Middle),
			formatFloat(b.Lower),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing record")
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBandsFile writes the band points to a csv file, creating its directory when missing.
func WriteBandsFile(path string, bands []types.BandPoint) (err error) {
	if len(bands) == 0 {
		return errors.New("no band points to write")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteBands(file, bands)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
