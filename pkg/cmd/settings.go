package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/c9s/bollband/pkg/cmd/cmdutil"
	"github.com/c9s/bollband/pkg/types"
)

// go run ./cmd/bollband settings --length 30 --k 2.5
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "validate and print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmdutil.LoadConfig()
		if err != nil {
			return err
		}

		patch, err := cmdutil.SettingsPatchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		cfg.Settings = patch.Apply(cfg.Settings)
		if err := cfg.Validate(); err != nil {
			return err
		}

		title := color.New(color.FgHiYellow).FprintfFunc()
		title(os.Stdout, "%s\n", cfg.Settings.String())

		for _, kind := range types.BandKinds {
			band := cfg.Settings.Band(kind)
			if !band.Show {
				color.New(color.FgHiBlack).Fprintf(os.Stdout, "  %-6s hidden\n", kind)
				continue
			}
			color.New(color.FgCyan).Fprintf(os.Stdout, "  %-6s %s width=%d %s\n", kind, band.Color, band.LineWidth, band.LineStyle)
		}

		if fill := cfg.Settings.BackgroundFill; fill.Show {
			color.New(color.FgCyan).Fprintf(os.Stdout, "  %-6s %s\n", "fill", fill.FillColor())
		}

		os.Stdout.WriteString("\n")
		return cfg.Dump(os.Stdout)
	},
}

func init() {
	cmdutil.SettingsFlags(settingsCmd.Flags())
	RootCmd.AddCommand(settingsCmd)
}
