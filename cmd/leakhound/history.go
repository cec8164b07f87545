// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/leakhound/internal/display"
	"github.com/pdiddy/leakhound/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `History lists recent searches from the local history database, newest
first. Use "history stats" for aggregate counts.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	if limit <= 0 {
		limit = cfg.History.Recent
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	display.History(cmd.OutOrStdout(), entries)
	return nil
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate search statistics",
	Long: `Stats summarizes the search history: total searches, average result
count, per-day activity, the most-searched queries, and source usage.`,
	RunE: runHistoryStats,
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	display.Stats(cmd.OutOrStdout(), st)
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 0, "entries to list (0 = config default)")

	historyCmd.AddCommand(historyStatsCmd)
	rootCmd.AddCommand(historyCmd)
}
