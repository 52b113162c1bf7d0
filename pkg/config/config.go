package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/c9s/bollband/pkg/chart"
	"github.com/c9s/bollband/pkg/datasource"
	"github.com/c9s/bollband/pkg/types"
)

type DataConfig struct {
	// Path is a csv file, a directory of csv files or a json file.
	Path   string `json:"path" yaml:"path"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

type ChartConfig struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Width    int    `json:"width" yaml:"width"`
	Height   int    `json:"height" yaml:"height"`
	Format   string `json:"format" yaml:"format"`
	FileName string `json:"fileName" yaml:"fileName"`
	LogScale bool   `json:"logScale" yaml:"logScale"`

	// From and To select the candle index window, To = 0 means the last candle.
	From int `json:"from,omitempty" yaml:"from,omitempty"`
	To   int `json:"to,omitempty" yaml:"to,omitempty"`
}

func (c ChartConfig) Window() chart.VisibleRange {
	return chart.VisibleRange{From: c.From, To: c.To}
}

type ServerConfig struct {
	Bind string `json:"bind" yaml:"bind"`

	// ReloadSchedule is a cron schedule to reload the price data, e.g. "@every 1m".
	ReloadSchedule string `json:"reloadSchedule,omitempty" yaml:"reloadSchedule,omitempty"`

	AllowOrigins []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`
}

type Config struct {
	Settings types.BollingerSettings `json:"settings" yaml:"settings"`
	Data     DataConfig              `json:"data" yaml:"data"`
	Chart    ChartConfig             `json:"chart" yaml:"chart"`
	Server   ServerConfig            `json:"server" yaml:"server"`
}

func Default() *Config {
	return &Config{
		Settings: types.DefaultBollingerSettings(),
		Chart: ChartConfig{
			Width:    1200,
			Height:   600,
			Format:   string(chart.FormatPNG),
			FileName: "bollband.png",
		},
		Server: ServerConfig{
			Bind: ":8080",
		},
	}
}

// Load reads a yaml config file on top of the defaults. Keys left out of
// the file keep their default values.
func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	config, err := Parse(content)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", configFile)
	}

	return config, nil
}

func Parse(content []byte) (*Config, error) {
	config := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && err != io.EOF {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks every section and returns all the violations found.
func (c *Config) Validate() (err error) {
	err = multierr.Append(err, c.Settings.Validate())

	if _, e := datasource.ParseFormat(c.Data.Format); e != nil {
		err = multierr.Append(err, types.NewConfigurationError("data.format", c.Data.Format, e.Error()))
	}

	if _, e := chart.ParseFormat(c.Chart.Format); e != nil {
		err = multierr.Append(err, types.NewConfigurationError("chart.format", c.Chart.Format, e.Error()))
	}

	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		err = multierr.Append(err, types.NewConfigurationError("chart.size",
			[]int{c.Chart.Width, c.Chart.Height}, "width and height must be positive"))
	}

	if c.Chart.From < 0 || (c.Chart.To != 0 && c.Chart.To <= c.Chart.From) {
		err = multierr.Append(err, types.NewConfigurationError("chart.window",
			c.Chart.Window(), "expecting 0 <= from < to"))
	}

	return err
}

// Dump writes the config as yaml.
func (c *Config) Dump(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return encoder.Close()
}
