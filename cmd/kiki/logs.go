package main

import (
	"kiki/internal/service"

	"github.com/spf13/cobra"
)

var logsFollow bool

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the sing-box service log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		journal := service.NewJournal(cfg.SingBox.Service)
		if logsFollow {
			return journal.Follow(cmd.Context(), cmd.OutOrStdout())
		}
		return journal.Show(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Keep printing new log lines")
	rootCmd.AddCommand(logsCmd)
}
