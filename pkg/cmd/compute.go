package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/bollband/pkg/cmd/cmdutil"
	"github.com/c9s/bollband/pkg/datasource/csvsource"
	"github.com/c9s/bollband/pkg/indicator"
	"github.com/c9s/bollband/pkg/style"
	"github.com/c9s/bollband/pkg/types"
)

// go run ./cmd/bollband compute --data pkg/datasource/csvsource/testdata/BTCUSDT-1h-2021-01-01.csv --length 20
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "compute the bollinger bands of the candle data",
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

		prices, err := cmdutil.LoadPrices(ctx, cfg.Data, true)
		if err != nil {
			return err
		}

		rolling, err := cmd.Flags().GetBool("rolling")
		if err != nil {
			return err
		}

		var bands []types.BandPoint
		if rolling {
			bands, err = indicator.BollingerRolling(prices, settings)
		} else {
			bands, err = indicator.Bollinger(prices, settings)
		}
		if err != nil {
			return err
		}

		log.Infof("%s: %d candles, %d band points", settings, len(prices), len(bands))

		if csvFile, _ := cmd.Flags().GetString("csv"); csvFile != "" {
			if err := csvsource.WriteBandsFile(csvFile, bands); err != nil {
				return err
			}
			log.Infof("band points are written to %s", csvFile)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := json.MarshalIndent(bands, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		tail, err := cmd.Flags().GetInt("tail")
		if err != nil {
			return err
		}

		rows := bands
		if tail > 0 && len(rows) > tail {
			rows = rows[len(rows)-tail:]
		}

		t := style.NewBandTable(os.Stdout, settings.String(), rows, style.NewDefaultTableStyle())
		t.Render()
		return nil
	},
}

func init() {
	cmdutil.SettingsFlags(computeCmd.Flags())
	computeCmd.Flags().Bool("rolling", false, "use the rolling standard deviation")
	computeCmd.Flags().Bool("json", false, "print the band points as json")
	computeCmd.Flags().String("csv", "", "write the band points to the csv file")
	computeCmd.Flags().Int("tail", 20, "the number of the latest band points to print, 0 prints all of them")
	RootCmd.AddCommand(computeCmd)
}
