package main

import (
	"context"

	"kiki/internal/logger"
	"kiki/internal/service"

	"github.com/spf13/cobra"
)

type serviceAction struct {
	name  string
	short string
	done  string
	run   func(service.Controller, context.Context) error
}

var serviceActions = []serviceAction{
	{"start", "Start the sing-box service", "Started", service.Controller.Start},
	{"stop", "Stop the sing-box service", "Stopped", service.Controller.Stop},
	{"restart", "Restart the sing-box service", "Restarted", service.Controller.Restart},
	{"enable", "Start the sing-box service at boot", "Enabled", service.Controller.Enable},
	{"disable", "Do not start the sing-box service at boot", "Disabled", service.Controller.Disable},
}

func newServiceCmd(a serviceAction) *cobra.Command {
	return &cobra.Command{
		Use:   a.name,
		Short: a.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ExecTimeout)
			defer cancel()

			return runServiceAction(ctx, service.NewSystemd(cfg.SingBox.Service), a, cfg.SingBox.Service)
		},
	}
}

func runServiceAction(ctx context.Context, ctl service.Controller, a serviceAction, unit string) error {
	if err := a.run(ctl, ctx); err != nil {
		return err
	}
	logger.Log.Infof("✅ %s %s", a.done, unit)
	return nil
}

func init() {
	for _, a := range serviceActions {
		rootCmd.AddCommand(newServiceCmd(a))
	}
}
