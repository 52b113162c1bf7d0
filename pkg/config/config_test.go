package config

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/c9s/bollband/pkg/chart"
	"github.com/c9s/bollband/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	type args struct {
		configFile string
	}

	tests := []struct {
		name    string
		args    args
		wantErr bool
		f       func(t *testing.T, config *Config)
	}{
		{
			name: "full",
			args: args{configFile: "testdata/full.yaml"},
			f: func(t *testing.T, config *Config) {
				s := config.Settings
				assert.Equal(t, 50, s.Length)
				assert.Equal(t, types.PriceSourceHigh, s.Source)
				assert.Equal(t, 2.5, s.StdDevMultiplier)
				assert.Equal(t, 2, s.Offset)
				assert.Equal(t, types.MATypeSMA, s.MAType)

				// partially given styles keep their defaults
				assert.Equal(t, types.Color("#FF00FF"), s.UpperBand.Color)
				assert.Equal(t, types.LineStyleDashed, s.UpperBand.LineStyle)
				assert.True(t, s.UpperBand.Show)
				assert.Equal(t, 1, s.UpperBand.LineWidth)
				assert.False(t, s.BackgroundFill.Show)
				assert.Equal(t, 0.1, s.BackgroundFill.Opacity)
				assert.Equal(t, types.DefaultBollingerSettings().LowerBand, s.LowerBand)

				assert.Equal(t, "./data/BTCUSDT-1h.csv", config.Data.Path)
				assert.Equal(t, "csv", config.Data.Format)

				assert.Equal(t, "BTCUSDT 1h", config.Chart.Title)
				assert.Equal(t, 800, config.Chart.Width)
				assert.Equal(t, "svg", config.Chart.Format)
				assert.True(t, config.Chart.LogScale)
				assert.Equal(t, chart.VisibleRange{From: 100, To: 400}, config.Chart.Window())

				assert.Equal(t, "127.0.0.1:9090", config.Server.Bind)
				assert.Equal(t, "@every 1m", config.Server.ReloadSchedule)
				assert.Equal(t, []string{"http://localhost:3000"}, config.Server.AllowOrigins)
			},
		},
		{
			name: "empty",
			args: args{configFile: "testdata/empty.yaml"},
			f: func(t *testing.T, config *Config) {
				assert.Equal(t, Default(), config)
			},
		},
		{
			name:    "invalid source",
			args:    args{configFile: "testdata/invalid_source.yaml"},
			wantErr: true,
		},
		{
			name:    "unknown key",
			args:    args{configFile: "testdata/unknown_key.yaml"},
			wantErr: true,
		},
		{
			name:    "missing file",
			args:    args{configFile: "testdata/missing.yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(tt.args.configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, config)
			if tt.f != nil {
				tt.f(t, config)
			}
		})
	}
}

func TestLoadConfig_CollectsAllViolations(t *testing.T) {
	content, err := os.ReadFile("testdata/invalid.yaml")
	require.NoError(t, err)

	_, err = Parse(content)
	require.Error(t, err)

	errs := multierr.Errors(err)
	var fields []string
	for _, e := range errs {
		ce, ok := e.(*types.ConfigurationError)
		require.True(t, ok, "%T", e)
		fields = append(fields, ce.Field)
	}

	assert.Equal(t, []string{"length", "stdDevMultiplier", "chart.format", "chart.size"}, fields)
}

func TestConfig_Validate(t *testing.T) {
	config := Default()
	assert.NoError(t, config.Validate())

	config.Chart.From = 10
	config.Chart.To = 5
	assert.Error(t, config.Validate())

	config = Default()
	config.Data.Format = "parquet"
	assert.Error(t, config.Validate())
}

func TestConfig_DumpRoundTrip(t *testing.T) {
	config := Default()
	config.Settings = config.Settings.WithLength(30).WithOffset(-2)
	config.Data.Path = "prices.csv"

	var buf bytes.Buffer
	require.NoError(t, config.Dump(&buf))
	assert.Contains(t, buf.String(), "#3B82F6")

	parsed, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, config, parsed)
}
