package cmdutil

import (
	"github.com/spf13/pflag"

	"github.com/c9s/bollband/pkg/types"
)

// SettingsFlags defines the flags that override the indicator settings.
func SettingsFlags(flags *pflag.FlagSet) {
	flags.Int("length", 0, "the moving average window length")
	flags.String("source", "", "the price source: open, high, low or close")
	flags.Float64("k", 0, "the standard deviation multiplier")
	flags.Int("offset", 0, "shift the band timestamps by N candles")
}

// SettingsPatchFromFlags collects the settings flags that were set on the
// command line, the others are left out of the patch.
func SettingsPatchFromFlags(flags *pflag.FlagSet) (*types.SettingsPatch, error) {
	var patch types.SettingsPatch

	if flags.Changed("length") {
		length, err := flags.GetInt("length")
		if err != nil {
			return nil, err
		}
		patch.Length = &length
	}

	if flags.Changed("source") {
		s, err := flags.GetString("source")
		if err != nil {
			return nil, err
		}

		source, err := types.ParsePriceSource(s)
		if err != nil {
			return nil, err
		}
		patch.Source = &source
	}

	if flags.Changed("k") {
		k, err := flags.GetFloat64("k")
		if err != nil {
			return nil, err
		}
		patch.StdDevMultiplier = &k
	}

	if flags.Changed("offset") {
		offset, err := flags.GetInt("offset")
		if err != nil {
			return nil, err
		}
		patch.Offset = &offset
	}

	return &patch, nil
}
