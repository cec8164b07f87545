// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/leakhound/internal/display"
	"github.com/pdiddy/leakhound/internal/resultfile"
	"github.com/pdiddy/leakhound/pkg/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare <file>...",
	Short: "Compare result files side by side",
	Long: `Compare loads one or more YAML result files written with "search --out",
merges them (dropping records that appear in more than one file), and
renders a comparison table with score bars.

Use --pick to compare only specific rows of the merged set, e.g.
--pick 1,3,7.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	pick, _ := cmd.Flags().GetString("pick")

	files := make([]resultfile.ResultFile, 0, len(args))
	for _, path := range args {
		rf, err := resultfile.Load(path)
		if err != nil {
			return err
		}
		files = append(files, rf)
	}

	records, removed := resultfile.Merge(files...)
	if pick != "" {
		var err error
		records, err = pickRecords(records, pick)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Comparing %d result file(s)", len(files))
	if removed > 0 {
		fmt.Fprintf(out, " (%d duplicates removed)", removed)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)

	display.Comparison(out, records)
	return nil
}

// pickRecords selects the 1-based rows named in expr from records,
// in the order given.
func pickRecords(records []types.EntityRecord, expr string) ([]types.EntityRecord, error) {
	var picked []types.EntityRecord
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid pick %q: %w", part, err)
		}
		if n < 1 || n > len(records) {
			return nil, fmt.Errorf("pick %d out of range 1-%d", n, len(records))
		}
		picked = append(picked, records[n-1])
	}
	return picked, nil
}

func init() {
	compareCmd.Flags().String("pick", "", "comma-separated rows of the merged set to compare (1-based)")

	rootCmd.AddCommand(compareCmd)
}
