package main

import (
	"github.com/spf13/cobra"

	"github.com/trendlens/trendlens/internal/trend"
)

var trendsLimit int

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Analyze cross-source trends",
	Long:  "Fetches every source and reduces the listings into hot keywords, trending topics, a per-platform summary, and controversy bands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := boundedLimit(trendsLimit)
		if err != nil {
			return err
		}

		orch, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		results := orch.FetchAll(cmd.Context(), limit)
		return printJSON(trend.AnalyzeTrends(results))
	},
}

func init() {
	trendsCmd.Flags().IntVar(&trendsLimit, "limit", 0, "items per source (default from config)")
	rootCmd.AddCommand(trendsCmd)
}
