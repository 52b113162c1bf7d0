package cmd

import (
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

var RootCmd = &cobra.Command{
	Use:   "bollband",
	Short: "bollinger band calculator and chart overlay",
	Long:  "compute bollinger bands from candle data, render them on a chart or serve them over http",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "config file, defaults to bollband.yaml when it exists")
	RootCmd.PersistentFlags().String("dotenv", ".env.local", "the dotenv file to load")

	RootCmd.PersistentFlags().String("data", "", "the candle data: a csv file, a directory of csv files or a json file")
	RootCmd.PersistentFlags().String("data-format", "", "the candle data format: csv, metatrader or json")
}

func Execute() {
	viper.SetEnvPrefix("bollband")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	// the dotenv file is applied before the commands read the env vars
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		dotenvFile := viper.GetString("dotenv")
		if _, err := os.Stat(dotenvFile); err == nil {
			if err := godotenv.Load(dotenvFile); err != nil {
				return err
			}
			log.Debugf("loaded dotenv file %s", dotenvFile)
		}

		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	logger := log.StandardLogger()
	if viper.GetBool("debug") {
		logger.SetLevel(log.DebugLevel)
	}

	environment := os.Getenv("BOLLBAND_ENV")
	switch environment {
	case "production", "prod":
		writer := &lumberjack.Logger{
			Filename:   path.Join("log", "access.log"),
			MaxSize:    100, // megabytes
			MaxBackups: 7,
			MaxAge:     30, // days
		}
		logger.AddHook(
			lfshook.NewHook(
				lfshook.WriterMap{
					log.DebugLevel: writer,
					log.InfoLevel:  writer,
					log.WarnLevel:  writer,
					log.ErrorLevel: writer,
					log.FatalLevel: writer,
				},
				&log.JSONFormatter{},
			),
		)
	}

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
