package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waylens/terminal/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "waylens",
	Short: "Fleet-telematics company intelligence terminal",
	Long:  "Ingests CSV/XLSX company research files into a searchable dataset snapshot, indexes the raw files, and serves scored multi-filter queries over both.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
