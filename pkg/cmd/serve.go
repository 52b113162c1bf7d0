package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/bollband/pkg/cmd/cmdutil"
	"github.com/c9s/bollband/pkg/metrics"
	"github.com/c9s/bollband/pkg/server"
	"github.com/c9s/bollband/pkg/types"
)

// go run ./cmd/bollband serve --data prices.csv --bind :8080
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the bands, the chart and the overlay commands over http",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		patch, err := cmdutil.SettingsPatchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		cfg.Settings = patch.Apply(cfg.Settings)
		if err := cfg.Settings.Validate(); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("bind") {
			cfg.Server.Bind, _ = flags.GetString("bind")
		}
		if flags.Changed("reload") {
			cfg.Server.ReloadSchedule, _ = flags.GetString("reload")
		}

		loader := func(ctx context.Context) (types.PriceSeries, error) {
			return cmdutil.LoadPrices(ctx, cfg.Data, false)
		}

		prices, err := cmdutil.LoadPrices(ctx, cfg.Data, true)
		if err != nil {
			return err
		}
		metrics.LoadedCandlesMetrics.Set(float64(len(prices)))

		store := server.NewStore(prices, cfg.Settings)
		srv := server.New(cfg, store, loader)

		baseURL := "http://" + cfg.Server.Bind
		if strings.HasPrefix(cfg.Server.Bind, ":") {
			baseURL = "http://localhost" + cfg.Server.Bind
		}

		go server.PingUntil(ctx, baseURL, func(candles int) {
			log.Infof("server is ready at %s, serving %d candles", baseURL, candles)
		})

		return srv.Run(ctx)
	},
}

func init() {
	cmdutil.SettingsFlags(serveCmd.Flags())
	serveCmd.Flags().String("bind", "", "the address to listen on, e.g. :8080")
	serveCmd.Flags().String("reload", "", "the cron schedule to reload the candle data, e.g. @every 1m")
	RootCmd.AddCommand(serveCmd)
}
