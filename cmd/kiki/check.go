package main

import (
	"context"
	"fmt"
	"os"

	"kiki/internal/logger"
	"kiki/internal/singbox"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify sing-box is installed and its config is valid",
	Long:  `Runs "sing-box version", makes sure the config file exists, then runs "sing-box check -c" on it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ExecTimeout)
		defer cancel()

		return runCheck(ctx, singbox.NewChecker(cfg.SingBox.Binary), cfg.SingBox.ConfigPath)
	},
}

func runCheck(ctx context.Context, checker *singbox.Checker, path string) error {
	v, err := checker.Version(ctx)
	if err != nil {
		return err
	}
	logger.Log.Infof("✅ Found %s", v)

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	logger.Log.Infof("✅ Config file %s exists", path)

	if err := checker.Check(ctx, path); err != nil {
		return err
	}
	logger.Log.Info("✅ Config is valid.")
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
