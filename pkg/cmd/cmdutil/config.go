package cmdutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/c9s/bollband/pkg/config"
	"github.com/c9s/bollband/pkg/datasource"
	"github.com/c9s/bollband/pkg/datasource/csvsource"
	"github.com/c9s/bollband/pkg/types"
)

const defaultConfigFile = "bollband.yaml"

// LoadConfig loads the --config file, or bollband.yaml when it exists, and
// applies the --data and --data-format overrides.
func LoadConfig() (*config.Config, error) {
	configFile := viper.GetString("config")
	if configFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			configFile = defaultConfigFile
		}
	}

	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
		log.Debugf("loaded config file %s", configFile)
	}

	if data := viper.GetString("data"); data != "" {
		cfg.Data.Path = data
	}

	if format := viper.GetString("data-format"); format != "" {
		cfg.Data.Format = format
	}

	return cfg, cfg.Validate()
}

// LoadPrices loads the configured price data. A progress bar is shown when
// showProgress is set and the data path is a directory of csv files.
func LoadPrices(ctx context.Context, cfg config.DataConfig, showProgress bool) (types.PriceSeries, error) {
	if cfg.Path == "" {
		return nil, errors.New("data path is not set, use --data or data.path in the config file")
	}

	format, err := datasource.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	options := datasource.Options{Format: format}

	if info, err := os.Stat(cfg.Path); err == nil && info.IsDir() && showProgress {
		files, err := csvsource.Files(cfg.Path)
		if err != nil {
			return nil, err
		}

		bar := pb.Full.Start(len(files))
		bar.SetTemplateString(`{{ string . "file" | green}} | {{counters . }} {{bar . }} {{percent . }} {{etime . }}`)
		defer bar.Finish()

		options.OnFileLoaded = func(path string, points int) {
			bar.Set("file", fmt.Sprintf("%s (%d candles)", filepath.Base(path), points))
			bar.Increment()
		}
	}

	prices, err := datasource.Load(ctx, cfg.Path, options)
	if err != nil {
		return nil, err
	}

	log.Infof("loaded %d candles from %s", len(prices), cfg.Path)
	return prices, nil
}
