package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Inspect and refresh feed subscriptions",
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the subscribed sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(GetConfig())
		if err != nil {
			return err
		}
		defer d.Close()

		for _, src := range d.fetcher.Sources() {
			if src.Title != "" {
				fmt.Printf("%-20s %s (%s)\n", src.ID, src.URL, src.Title)
			} else {
				fmt.Printf("%-20s %s\n", src.ID, src.URL)
			}
		}
		return nil
	},
}

var feedsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh all sources and report per-source results",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(GetConfig())
		if err != nil {
			return err
		}
		defer d.Close()

		results := d.fetcher.RefreshAll(context.Background())
		failed := 0
		for _, src := range d.fetcher.Sources() {
			r := results[src.ID]
			status := "ok"
			if !r.Success {
				status = "FAIL"
				failed++
			}
			fmt.Printf("%-20s %-4s %s\n", src.ID, status, r.Message)
		}
		fmt.Printf("%d sources, %d failed\n", len(results), failed)
		return nil
	},
}

func init() {
	feedsCmd.AddCommand(feedsListCmd)
	feedsCmd.AddCommand(feedsRefreshCmd)
	rootCmd.AddCommand(feedsCmd)
}
