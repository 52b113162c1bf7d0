package cmd

import (
	"context"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/bollband/pkg/chart"
	"github.com/c9s/bollband/pkg/cmd/cmdutil"
	"github.com/c9s/bollband/pkg/indicator"
)

// go run ./cmd/bollband render --data prices.csv --output bollband.svg
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render the candles with the bollinger band overlay to a png or svg file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		patch, err := cmdutil.SettingsPatchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		settings := patch.Apply(cfg.Settings)

		flags := cmd.Flags()
		if flags.Changed("output") {
			cfg.Chart.FileName, _ = flags.GetString("output")
		}
		if flags.Changed("title") {
			cfg.Chart.Title, _ = flags.GetString("title")
		}
		if flags.Changed("width") {
			cfg.Chart.Width, _ = flags.GetInt("width")
		}
		if flags.Changed("height") {
			cfg.Chart.Height, _ = flags.GetInt("height")
		}
		if flags.Changed("log") {
			cfg.Chart.LogScale, _ = flags.GetBool("log")
		}
		if flags.Changed("from") {
			cfg.Chart.From, _ = flags.GetInt("from")
		}
		if flags.Changed("to") {
			cfg.Chart.To, _ = flags.GetInt("to")
		}

		// the file extension wins over the configured format
		formatName := cfg.Chart.Format
		if ext := filepath.Ext(cfg.Chart.FileName); ext != "" {
			formatName = ext
		}

		format, err := chart.ParseFormat(formatName)
		if err != nil {
			return err
		}

		prices, err := cmdutil.LoadPrices(ctx, cfg.Data, true)
		if err != nil {
			return err
		}

		bands, err := indicator.Bollinger(prices, settings)
		if err != nil {
			return err
		}

		canvas, err := chart.NewCanvas(prices, bands, settings, chart.CanvasOptions{
			Title:    cfg.Chart.Title,
			Width:    cfg.Chart.Width,
			Height:   cfg.Chart.Height,
			LogScale: cfg.Chart.LogScale,
			Window:   cfg.Chart.Window(),
		})
		if err != nil {
			return err
		}

		if dir := filepath.Dir(cfg.Chart.FileName); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		f, err := os.Create(cfg.Chart.FileName)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := canvas.Render(format, f); err != nil {
			return err
		}

		log.Infof("chart is rendered to %s", cfg.Chart.FileName)
		return nil
	},
}

func init() {
	cmdutil.SettingsFlags(renderCmd.Flags())
	renderCmd.Flags().StringP("output", "o", "", "the output file, the extension picks the format (.png or .svg)")
	renderCmd.Flags().String("title", "", "the chart title")
	renderCmd.Flags().Int("width", 0, "the chart width in pixels")
	renderCmd.Flags().Int("height", 0, "the chart height in pixels")
	renderCmd.Flags().Bool("log", false, "use the logarithmic price scale")
	renderCmd.Flags().Int("from", 0, "the first candle index to chart")
	renderCmd.Flags().Int("to", 0, "the candle index to stop at, 0 means the last candle")
	RootCmd.AddCommand(renderCmd)
}
