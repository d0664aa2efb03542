package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dhnext/launchpad/internal/config"
)

const appName = "launchpad"

// k holds the parsed command line flags
var k *koanf.Koanf

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "DHNext Launchpad compliance service",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cobra.CheckErr(initCmdFlags(cmd))
		setupLogging()
	},
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down gracefully...")
	}()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	k = koanf.New(".")

	defaultPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}

	rootCmd.PersistentFlags().Bool("pretty", false, "enable pretty (human readable) logging output")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging output")
	rootCmd.PersistentFlags().String("config", defaultPath, "config file location")
}

// initCmdFlags loads the flags from the command line into the koanf instance
func initCmdFlags(cmd *cobra.Command) error {
	return k.Load(posflag.Provider(cmd.Flags(), k.Delim(), k), nil)
}

func setupLogging() {
	level := zerolog.InfoLevel
	if k.Bool("debug") {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if k.Bool("pretty") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadConfig reads the config file; a missing file is only an error when --config was given explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := k.String("config")

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, config.ErrConfigNotFound) && !cmd.Flags().Changed("config") {
		log.Warn().Str("path", path).Msg("config file not found, using defaults and environment")
		return config.Load("")
	}
	return nil, err
}
