package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/trendlens/trendlens/internal/trend"
)

var (
	controversyLimit int
	controversyTop   int
)

var controversyCmd = &cobra.Command{
	Use:   "controversy",
	Short: "Rank records by controversy score",
	Long:  "Fetches every source, scores each title, and prints the most controversial records with the corpus mean.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := boundedLimit(controversyLimit)
		if err != nil {
			return err
		}
		if controversyTop < 1 {
			return eris.New("top must be a positive integer")
		}

		orch, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		results := orch.FetchAll(cmd.Context(), limit)
		return printJSON(trend.AnalyzeControversy(results, controversyTop))
	},
}

func init() {
	controversyCmd.Flags().IntVar(&controversyLimit, "limit", 0, "items per source (default from config)")
	controversyCmd.Flags().IntVar(&controversyTop, "top", 10, "number of records to keep")
	rootCmd.AddCommand(controversyCmd)
}
