package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/trendlens/trendlens/internal/model"
)

var (
	fetchLimit    int
	fetchAll      bool
	fetchCategory string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [source]",
	Short: "Fetch trending listings",
	Long: `Fetch the trending listing for one source, a category, or the
whole catalog. Sources that fail or lack credentials degrade to
deterministic fallback data instead of erroring.

Examples:
  # One source
  fetch zhihu

  # Every source
  fetch --all

  # Domestic sources only, ten items each
  fetch --category domestic --limit 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := boundedLimit(fetchLimit)
		if err != nil {
			return err
		}

		orch, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		switch {
		case fetchAll:
			return printJSON(orch.FetchAll(ctx, limit))
		case fetchCategory != "":
			category := model.Category(fetchCategory)
			if !category.Valid() {
				return eris.Errorf("unknown category %q (want domestic or global)", fetchCategory)
			}
			return printJSON(orch.FetchByCategory(ctx, category, limit))
		case len(args) == 1:
			result, err := orch.FetchOne(ctx, args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(result)
		default:
			return eris.New("specify a source id, --all, or --category")
		}
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "items per source (default from config)")
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every source")
	fetchCmd.Flags().StringVar(&fetchCategory, "category", "", "fetch one category (domestic or global)")
	rootCmd.AddCommand(fetchCmd)
}
