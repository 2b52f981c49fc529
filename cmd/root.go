package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trendlens/trendlens/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "trendlens",
	Short: "Trending-news aggregation engine",
	Long:  "Fetches trending listings from hotlist, feed, and trend-proxy sources concurrently, caches them, and reduces them into trend and controversy reports.",
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
