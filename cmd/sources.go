package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trendlens/trendlens/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the source catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := source.NewRegistry()
		if err != nil {
			return err
		}

		fmt.Printf("%-12s %-10s %-10s %s\n", "ID", "CATEGORY", "KIND", "NAME")
		for _, entry := range registry.All() {
			fmt.Printf("%-12s %-10s %-10s %s\n", entry.ID, entry.Category, entry.Kind, entry.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
