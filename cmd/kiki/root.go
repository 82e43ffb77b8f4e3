package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kiki/internal/config"
	"kiki/internal/logger"

	"github.com/spf13/cobra"
)

const version = "1.0"

var cfgFile string
var singboxConfig string
var verbose bool
var logFile string

var rootCmd = &cobra.Command{
	Use:           "kiki",
	Short:         "Point sing-box's proxy outbound at a share link and manage the service",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, logFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Sync()
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the tool config and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if singboxConfig != "" {
		cfg.SingBox.ConfigPath = singboxConfig
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&singboxConfig, "singbox-config", "", "sing-box config.json to edit (overrides singbox.config_path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to file instead of stderr")
}
