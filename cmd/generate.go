package cmd

import (
	"context"
	"fmt"

	"trendfeed/internal/trending"

	"github.com/spf13/cobra"
)

var (
	genHours   int
	genCount   int
	genRefresh bool
	genNoAI    bool
)

// generateCmd runs one end-to-end trending run and prints a short report.
// Any completed run exits zero, an empty snapshot included; only setup
// failures (bad config, unwritable store) or a lost snapshot are errors.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the trending snapshot once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if genHours > 0 {
			cfg.Trending.Hours = genHours
		}
		if genCount > 0 {
			cfg.Trending.TopCount = genCount
		}

		d, err := buildDeps(cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		snap, err := d.generator.Generate(context.Background(), trending.Options{
			Hours:        cfg.Trending.Hours,
			TopCount:     cfg.Trending.TopCount,
			RefreshFeeds: genRefresh,
			UseAISummary: !genNoAI,
		})
		if err != nil {
			return err
		}

		fmt.Printf("trending snapshot written to %s\n", d.store.Dir())
		fmt.Printf("  general: %d items\n", len(snap.General.Items))
		fmt.Printf("  categories: %d\n", snap.Categories.Len())
		for _, name := range snap.Categories.Keys() {
			list, _ := snap.Categories.Get(name)
			fmt.Printf("    %-10s %d items  %q\n", name, len(list.Items), list.Title)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genHours, "hours", 0, "trailing candidate window in hours (default from config: 24)")
	generateCmd.Flags().IntVar(&genCount, "count", 0, "entries per trending list (default from config: 20)")
	generateCmd.Flags().BoolVar(&genRefresh, "refresh", false, "refresh all feed sources first")
	generateCmd.Flags().BoolVar(&genNoAI, "no-ai", false, "skip AI summaries and titles")
	rootCmd.AddCommand(generateCmd)
}
